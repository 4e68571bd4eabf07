package option

// Toast field names, in declaration order.
const (
	FieldMessage          = "message"
	FieldType             = "type"
	FieldVariant          = "variant"
	FieldDuration         = "duration"
	FieldFontSize         = "fontSize"
	FieldIconSize         = "iconSize"
	FieldDisableAnimation = "disableAnimation"
	FieldShowProgress     = "showProgress"
)

// Toast types.
const (
	TypeDefault = "default"
	TypeSuccess = "success"
	TypeError   = "error"
	TypeWarning = "warning"
)

// Toast variants.
const (
	VariantRegular   = "regular"
	VariantOutlined  = "outlined"
	VariantContained = "contained"
)

// DefaultMessage is the message a fresh session starts with.
const DefaultMessage = "Welcome to floatify"

// ToastRegistry returns the registry of react-floatify toast options.
// Message comes first; it is passed positionally, the rest form the options record.
func ToastRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(Field{
		Name:        FieldMessage,
		Label:       "Message",
		Description: "Text shown inside the toast",
		Kind:        KindText,
		Default:     Text(DefaultMessage),
	})

	r.MustRegister(Field{
		Name:        FieldType,
		Label:       "Type",
		Description: "Semantic color and icon of the toast",
		Kind:        KindChoice,
		Choices:     []string{TypeDefault, TypeSuccess, TypeError, TypeWarning},
		Default:     Text(TypeDefault),
	})

	r.MustRegister(Field{
		Name:        FieldVariant,
		Label:       "Variant",
		Description: "Visual treatment of the toast body",
		Kind:        KindChoice,
		Choices:     []string{VariantRegular, VariantOutlined, VariantContained},
		Default:     Text(VariantRegular),
	})

	r.MustRegister(Field{
		Name:        FieldDuration,
		Label:       "Duration (sec)",
		Description: "Seconds before the toast dismisses itself",
		Kind:        KindNumber,
		Min:         MinValue(1),
		Max:         MaxValue(30),
		Default:     Number(5),
	})

	r.MustRegister(Field{
		Name:        FieldFontSize,
		Label:       "Font Size",
		Description: "Pixels as a number, or any CSS size such as \"1.2rem\"",
		Kind:        KindNumberOrText,
		Default:     Number(14),
	})

	r.MustRegister(Field{
		Name:        FieldIconSize,
		Label:       "Icon Size",
		Description: "Icon edge length in pixels",
		Kind:        KindNumber,
		Min:         MinValue(1),
		Default:     Number(17),
	})

	r.MustRegister(Field{
		Name:        FieldDisableAnimation,
		Label:       "Disable animation",
		Description: "Show and hide the toast without transitions",
		Kind:        KindBool,
		Default:     Bool(false),
	})

	r.MustRegister(Field{
		Name:        FieldShowProgress,
		Label:       "Show Progress",
		Description: "Draw a countdown bar along the toast edge",
		Kind:        KindBool,
		Default:     Bool(true),
	})

	return r
}
