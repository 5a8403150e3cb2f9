package surface

// Function identifies a formatting command understood by the editor shell.
type Function string

const (
	Bold            Function = "bold"
	Italic          Function = "italic"
	Underline       Function = "underline"
	ClearFormatting Function = "clear-formatting"
	UnorderedList   Function = "unordered-list"
	OrderedList     Function = "ordered-list"
	HorizontalRule  Function = "horizontal-rule"
	AlignLeft       Function = "align-left"
	AlignCenter     Function = "align-center"
	AlignRight      Function = "align-right"
	AlignJustify    Function = "align-justify"
)

// jsNames maps each function to the shell script entry point that runs it.
var jsNames = map[Function]string{
	Bold:            "setBold",
	Italic:          "setItalic",
	Underline:       "setUnderline",
	ClearFormatting: "removeFormat",
	UnorderedList:   "setUnorderedList",
	OrderedList:     "setOrderedList",
	HorizontalRule:  "insertHorizontalRule",
	AlignLeft:       "justifyLeft",
	AlignCenter:     "justifyCenter",
	AlignRight:      "justifyRight",
	AlignJustify:    "justifyFull",
}

// Functions lists every formatting function in toolbar order.
func Functions() []Function {
	return []Function{
		Bold, Italic, Underline, ClearFormatting,
		UnorderedList, OrderedList, HorizontalRule,
		AlignLeft, AlignCenter, AlignRight, AlignJustify,
	}
}

// JSName returns the script function for f. ok is false for functions the
// shell does not provide.
func (f Function) JSName() (name string, ok bool) {
	name, ok = jsNames[f]
	return name, ok
}
