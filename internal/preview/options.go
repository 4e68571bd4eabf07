package preview

import (
	"math"
	"time"

	"github.com/dshills/toasty/internal/option"
)

// DefaultDuration applies when a toast's duration is missing or unusable.
const DefaultDuration = 5 * time.Second

// maxDuration caps absurd durations so expiry arithmetic cannot overflow.
const maxDuration = time.Hour

// ToastOptions is the per-call record handed to a Toaster: every
// configured field except the message, in registry order.
type ToastOptions struct {
	entries []option.Entry
}

// NewToastOptions builds options from entries, keeping their order.
func NewToastOptions(entries ...option.Entry) ToastOptions {
	return ToastOptions{entries: append([]option.Entry(nil), entries...)}
}

// OptionsFromSnapshot drops messageField from s and keeps everything else.
func OptionsFromSnapshot(s option.Snapshot, messageField string) ToastOptions {
	all := s.Entries()
	entries := make([]option.Entry, 0, len(all))
	for _, e := range all {
		if e.Name != messageField {
			entries = append(entries, e)
		}
	}
	return ToastOptions{entries: entries}
}

// Entries returns a copy of the options in order.
func (o ToastOptions) Entries() []option.Entry {
	return append([]option.Entry(nil), o.entries...)
}

// Len returns the number of options.
func (o ToastOptions) Len() int {
	return len(o.entries)
}

// Get returns the named option.
func (o ToastOptions) Get(name string) (option.Value, bool) {
	for _, e := range o.entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return option.Value{}, false
}

func (o ToastOptions) text(name, fallback string) string {
	if v, ok := o.Get(name); ok && v.IsText() {
		return v.Str()
	}
	return fallback
}

func (o ToastOptions) flag(name string, fallback bool) bool {
	if v, ok := o.Get(name); ok && v.IsBool() {
		return v.Truth()
	}
	return fallback
}

// Type returns the toast type, "default" when unset.
func (o ToastOptions) Type() string {
	return o.text(option.FieldType, option.TypeDefault)
}

// Variant returns the visual variant, "regular" when unset.
func (o ToastOptions) Variant() string {
	return o.text(option.FieldVariant, option.VariantRegular)
}

// ShowProgress reports whether a progress bar is drawn.
func (o ToastOptions) ShowProgress() bool {
	return o.flag(option.FieldShowProgress, true)
}

// DisableAnimation reports whether entry animation is off.
func (o ToastOptions) DisableAnimation() bool {
	return o.flag(option.FieldDisableAnimation, false)
}

// FontSize returns the raw font size value, number or CSS text.
func (o ToastOptions) FontSize() (option.Value, bool) {
	return o.Get(option.FieldFontSize)
}

// Duration converts the duration option (seconds) to a time.Duration.
// Non-positive or non-finite values yield DefaultDuration.
func (o ToastOptions) Duration() time.Duration {
	v, ok := o.Get(option.FieldDuration)
	if !ok || !v.IsNumber() {
		return DefaultDuration
	}
	secs := v.Num()
	if math.IsNaN(secs) || math.IsInf(secs, 0) || secs <= 0 {
		return DefaultDuration
	}
	if secs >= maxDuration.Seconds() {
		return maxDuration
	}
	return time.Duration(secs * float64(time.Second))
}
