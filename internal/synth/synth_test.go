package synth

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/toasty/internal/option"
	"github.com/dshills/toasty/internal/store"
)

const defaultUsage = `import { useToast } from "react-floatify";

const { addToast } = useToast();

addToast("Welcome to floatify", {
  type: "default",
  variant: "regular",
  duration: 5,
  fontSize: 14,
  iconSize: 17,
  disableAnimation: false,
  showProgress: true,
});
`

func TestSynthesize_Defaults(t *testing.T) {
	s := option.ToastRegistry().Defaults()

	assert.Equal(t, defaultUsage, Synthesize(s, Environment{}))
}

func TestSynthesize_IsPure(t *testing.T) {
	s := option.ToastRegistry().Defaults().With(option.FieldDuration, option.Number(12.5))
	env := Environment{Placement: "top left"}

	first := Synthesize(s, env)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Synthesize(s, env))
	}
}

func TestSynthesize_OrderIndependentOfEditHistory(t *testing.T) {
	reg := option.ToastRegistry()

	a := store.New(reg)
	require.NoError(t, a.Set(option.FieldShowProgress, option.Bool(false)))
	require.NoError(t, a.Set(option.FieldType, option.Text(option.TypeError)))
	require.NoError(t, a.Set(option.FieldDuration, option.Number(9)))

	b := store.New(reg)
	require.NoError(t, b.Set(option.FieldDuration, option.Number(9)))
	require.NoError(t, b.Set(option.FieldType, option.Text(option.TypeError)))
	require.NoError(t, b.Set(option.FieldShowProgress, option.Bool(false)))

	assert.Equal(t, Synthesize(a.Snapshot(), Environment{}), Synthesize(b.Snapshot(), Environment{}))

	code := Synthesize(a.Snapshot(), Environment{})
	prev := -1
	for _, name := range reg.Names()[1:] {
		idx := strings.Index(code, "  "+name+":")
		require.Greater(t, idx, prev, "key %s out of order", name)
		prev = idx
	}
}

func TestSynthesize_FontSizeTextAndNumber(t *testing.T) {
	reg := option.ToastRegistry()
	st := store.New(reg)

	require.NoError(t, st.SetInput(option.FieldFontSize, "1.2rem"))
	code := Synthesize(st.Snapshot(), Environment{})
	assert.Contains(t, code, `fontSize: "1.2rem",`)

	require.NoError(t, st.SetInput(option.FieldFontSize, "14"))
	code = Synthesize(st.Snapshot(), Environment{})
	assert.Contains(t, code, "fontSize: 14,")
	assert.NotContains(t, code, `fontSize: "14"`)
}

func TestSynthesize_OutOfRangeValueIsRendered(t *testing.T) {
	s := option.ToastRegistry().Defaults().With(option.FieldDuration, option.Number(45))

	assert.Contains(t, Synthesize(s, Environment{}), "duration: 45,")
}

func TestSynthesize_ProviderSnippet(t *testing.T) {
	s := option.ToastRegistry().Defaults()

	code := Synthesize(s, Environment{Placement: "bottom right"})
	assert.True(t, strings.HasPrefix(code, defaultUsage))
	assert.True(t, strings.HasSuffix(code, `import { ToastProvider } from "react-floatify";

<ToastProvider position="bottom right">
  <App />
</ToastProvider>
`))

	assert.Empty(t, ProviderSnippet(Environment{}))
	assert.Contains(t, ProviderSnippet(Environment{Placement: `a"b`}), `position={"a\"b"}`)
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
		{"line\nbreak\ttab", `"line\nbreak\ttab"`},
		{"\x01\x7f", `"\x01\x7F"`},
		{"sep\u2028par\u2029", `"sep\u2028par\u2029"`},
		{"emoji \U0001F35E", "\"emoji \U0001F35E\""},
		{"", `""`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Quote(tt.in), "Quote(%q)", tt.in)
	}
}

func TestLiteral(t *testing.T) {
	assert.Equal(t, "5", Literal(option.Number(5)))
	assert.Equal(t, "0.1", Literal(option.Number(0.1)))
	assert.Equal(t, "-3.25", Literal(option.Number(-3.25)))
	assert.Equal(t, "NaN", Literal(option.Number(math.NaN())))
	assert.Equal(t, "-Infinity", Literal(option.Number(math.Inf(-1))))
	assert.Equal(t, "true", Literal(option.Bool(true)))
	assert.Equal(t, `"x"`, Literal(option.Text("x")))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "fontSize", Key("fontSize"))
	assert.Equal(t, "$ok_1", Key("$ok_1"))
	assert.Equal(t, `"font-size"`, Key("font-size"))
	assert.Equal(t, `"1st"`, Key("1st"))
}
