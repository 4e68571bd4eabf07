package option

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToastRegistry_DeclarationOrder(t *testing.T) {
	r := ToastRegistry()

	assert.Equal(t, []string{
		FieldMessage, FieldType, FieldVariant, FieldDuration,
		FieldFontSize, FieldIconSize, FieldDisableAnimation, FieldShowProgress,
	}, r.Names())
	assert.Equal(t, 8, r.Len())
}

func TestToastRegistry_Defaults(t *testing.T) {
	d := ToastRegistry().Defaults()

	want := map[string]Value{
		FieldMessage:          Text("Welcome to floatify"),
		FieldType:             Text("default"),
		FieldVariant:          Text("regular"),
		FieldDuration:         Number(5),
		FieldFontSize:         Number(14),
		FieldIconSize:         Number(17),
		FieldDisableAnimation: Bool(false),
		FieldShowProgress:     Bool(true),
	}
	require.Equal(t, len(want), d.Len())
	for name, v := range want {
		got, ok := d.Get(name)
		require.True(t, ok, name)
		assert.True(t, v.Equal(got), "%s = %v, want %v", name, got, v)
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Field{Name: "a", Kind: KindBool, Default: Bool(true)}))

	err := r.Register(Field{Name: "a", Kind: KindBool, Default: Bool(false)})
	assert.ErrorIs(t, err, ErrFieldAlreadyRegistered)
}

func TestRegistry_RegisterRejectsInconsistentDefault(t *testing.T) {
	tests := []struct {
		name  string
		field Field
	}{
		{"kind", Field{Name: "n", Kind: KindNumber, Default: Text("5")}},
		{"choice", Field{Name: "c", Kind: KindChoice, Choices: []string{"a"}, Default: Text("b")}},
		{"range", Field{Name: "r", Kind: KindNumber, Min: MinValue(1), Default: Number(0)}},
		{"empty name", Field{Kind: KindBool, Default: Bool(true)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRegistry().Register(tt.field)
			assert.ErrorIs(t, err, ErrInvalidDefault)
		})
	}
}

func TestRegistry_MustRegisterPanics(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(Field{Name: "x", Kind: KindText, Default: Text("")})
	assert.Panics(t, func() {
		r.MustRegister(Field{Name: "x", Kind: KindText, Default: Text("")})
	})
}

func TestField_Validate(t *testing.T) {
	r := ToastRegistry()
	duration, _ := r.Field(FieldDuration)
	typ, _ := r.Field(FieldType)
	fontSize, _ := r.Field(FieldFontSize)

	assert.NoError(t, duration.Validate(Number(30)))
	assert.ErrorIs(t, duration.Validate(Number(31)), ErrOutOfRange)
	assert.ErrorIs(t, duration.Validate(Number(math.NaN())), ErrOutOfRange)
	assert.ErrorIs(t, duration.Validate(Text("5")), ErrKindMismatch)

	assert.NoError(t, typ.Validate(Text(TypeError)))
	assert.ErrorIs(t, typ.Validate(Text("info")), ErrInvalidChoice)

	assert.NoError(t, fontSize.Validate(Number(14)))
	assert.NoError(t, fontSize.Validate(Text("1.2rem")))
	assert.ErrorIs(t, fontSize.Validate(Bool(true)), ErrKindMismatch)
}

func TestIsAdvisory(t *testing.T) {
	duration, _ := ToastRegistry().Field(FieldDuration)

	assert.True(t, IsAdvisory(duration.Validate(Number(99))))
	assert.False(t, IsAdvisory(duration.Validate(Text("x"))))
	assert.False(t, IsAdvisory(nil))

	var de *DomainError
	require.True(t, errors.As(duration.Validate(Number(0)), &de))
	assert.Equal(t, FieldDuration, de.Field)
}

func TestField_ParseInput(t *testing.T) {
	r := ToastRegistry()
	field := func(name string) *Field {
		f, ok := r.Field(name)
		require.True(t, ok)
		return f
	}

	tests := []struct {
		field   string
		raw     string
		want    Value
		wantErr error
	}{
		{FieldMessage, "  hi  ", Text("  hi  "), nil},
		{FieldType, " error ", Text("error"), nil},
		{FieldDuration, "12", Number(12), nil},
		{FieldDuration, "2.5", Number(2.5), nil},
		{FieldDuration, "abc", Value{}, ErrMalformedInput},
		{FieldDuration, "", Value{}, ErrMalformedInput},
		{FieldDuration, "inf", Value{}, ErrMalformedInput},
		{FieldFontSize, "14", Number(14), nil},
		{FieldFontSize, "1.2rem", Text("1.2rem"), nil},
		{FieldFontSize, "", Text(""), nil},
		{FieldFontSize, "0x10", Text("0x10"), nil},
		{FieldDisableAnimation, "true", Bool(true), nil},
		{FieldDisableAnimation, "yes", Value{}, ErrMalformedInput},
	}

	for _, tt := range tests {
		t.Run(tt.field+"/"+tt.raw, func(t *testing.T) {
			got, err := field(tt.field).ParseInput(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v (%s)", got, got.Tag())
		})
	}
}

func TestRegistry_Snapshot(t *testing.T) {
	r := ToastRegistry()
	values := r.Defaults().Map()
	typed := make(map[string]Value, len(values))
	for _, e := range r.Defaults().Entries() {
		typed[e.Name] = e.Value
	}

	s, err := r.Snapshot(typed)
	require.NoError(t, err)
	assert.True(t, s.Equal(r.Defaults()))

	delete(typed, FieldIconSize)
	_, err = r.Snapshot(typed)
	assert.ErrorIs(t, err, ErrIncompleteSnapshot)

	typed[FieldIconSize] = Number(17)
	typed["position"] = Text("top left")
	_, err = r.Snapshot(typed)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSnapshot_WithIsCopy(t *testing.T) {
	d := ToastRegistry().Defaults()
	changed := d.With(FieldType, Text(TypeError))

	assert.Equal(t, "default", d.MustGet(FieldType).Str())
	assert.Equal(t, "error", changed.MustGet(FieldType).Str())
	assert.False(t, d.Equal(changed))
	assert.True(t, d.With("nope", Bool(true)).Equal(d))
}

func TestSnapshot_MustGetPanicsOnMissingField(t *testing.T) {
	assert.Panics(t, func() {
		ToastRegistry().Defaults().MustGet("position")
	})
}

func TestValue_EqualAndFormat(t *testing.T) {
	assert.True(t, Number(math.NaN()).Equal(Number(math.NaN())))
	assert.False(t, Number(14).Equal(Text("14")))
	assert.Equal(t, "14", Number(14).String())
	assert.Equal(t, "0.1", Number(0.1).String())
	assert.Equal(t, "-Infinity", FormatNumber(math.Inf(-1)))
	assert.Equal(t, "true", Bool(true).String())
}
