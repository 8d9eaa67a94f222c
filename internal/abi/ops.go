package abi

// Mode is the passing mode of one operation parameter.
type Mode uint8

const (
	// ByValue passes a bare scalar directly.
	ByValue Mode = iota + 1
	// ByRef passes a pointer to a caller-owned value that the callee only reads.
	ByRef
	// Out passes a pointer to a caller-owned slot that the callee overwrites.
	Out
)

func (m Mode) String() string {
	switch m {
	case ByValue:
		return "value"
	case ByRef:
		return "ref"
	case Out:
		return "out"
	default:
		return "unknown"
	}
}

// OpID identifies an operation in the catalogue.
type OpID uint8

const (
	OpIntAdd OpID = iota + 1
	OpIntSub
	OpIntMul
	OpIntDiv
	OpIntEq
	OpIntLessThan
	OpIntClone
	OpTrue
	OpFalse
	OpStringEq
	OpStringClone
	OpPrintNum
	OpPrintStr
	OpPrintBool
	OpAbort
)

// Param describes one parameter of an operation.
type Param struct {
	Name string
	Kind Kind
	Mode Mode
}

// Op is one catalogue entry: the symbol generated code links against, its
// parameters in call order and whether it returns at all.
type Op struct {
	ID       OpID
	Symbol   string
	Alias    string
	Params   []Param
	NoReturn bool
	Doc      string
}

// Result returns the output parameter, if the operation has one.
// The output parameter is always first.
func (o Op) Result() (Param, bool) {
	if len(o.Params) == 0 || o.Params[0].Mode != Out {
		return Param{}, false
	}
	return o.Params[0], true
}

// Operands returns the input parameters in call order.
func (o Op) Operands() []Param {
	if _, ok := o.Result(); ok {
		return o.Params[1:]
	}
	return o.Params
}

func out(k Kind) Param { return Param{Name: "out", Kind: k, Mode: Out} }

func val(name string, k Kind) Param { return Param{Name: name, Kind: k, Mode: ByValue} }

func ref(name string, k Kind) Param { return Param{Name: name, Kind: k, Mode: ByRef} }

var catalogue = []Op{
	{ID: OpIntAdd, Symbol: "Int_Int_add", Alias: "int.add",
		Params: []Param{out(KindInt), val("v1", KindInt), val("v2", KindInt)},
		Doc:    "wrapping signed addition"},
	{ID: OpIntSub, Symbol: "Int_Int_sub", Alias: "int.sub",
		Params: []Param{out(KindInt), val("v1", KindInt), val("v2", KindInt)},
		Doc:    "wrapping signed subtraction"},
	{ID: OpIntMul, Symbol: "Int_Int_mul", Alias: "int.mul",
		Params: []Param{out(KindInt), val("v1", KindInt), val("v2", KindInt)},
		Doc:    "wrapping signed multiplication"},
	{ID: OpIntDiv, Symbol: "Int_Int_div", Alias: "int.div",
		Params: []Param{out(KindInt), val("v1", KindInt), val("v2", KindInt)},
		Doc:    "truncating signed division, divisor must be non-zero"},
	{ID: OpIntEq, Symbol: "Int_Int_eq", Alias: "int.eq",
		Params: []Param{out(KindBool), ref("v1", KindInt), ref("v2", KindInt)},
		Doc:    "bitwise equality"},
	{ID: OpIntLessThan, Symbol: "Int_Int_lessThan", Alias: "int.lessThan",
		Params: []Param{out(KindBool), ref("v1", KindInt), ref("v2", KindInt)},
		Doc:    "signed less-than"},
	{ID: OpIntClone, Symbol: "Int_Int_clone", Alias: "int.clone",
		Params: []Param{out(KindInt), ref("v", KindInt)},
		Doc:    "copy of the scalar"},
	{ID: OpTrue, Symbol: "Std_Basic_Util_siko_runtime_true", Alias: "bool.true",
		Params: []Param{out(KindBool)},
		Doc:    "the true inhabitant"},
	{ID: OpFalse, Symbol: "Std_Basic_Util_siko_runtime_false", Alias: "bool.false",
		Params: []Param{out(KindBool)},
		Doc:    "the false inhabitant"},
	{ID: OpStringEq, Symbol: "String_String_eq", Alias: "string.eq",
		Params: []Param{out(KindBool), ref("v1", KindString), ref("v2", KindString)},
		Doc:    "length check, then byte-for-byte over length bytes"},
	{ID: OpStringClone, Symbol: "String_String_clone", Alias: "string.clone",
		Params: []Param{out(KindString), ref("v", KindString)},
		Doc:    "copy of the (pointer, length) pair; bytes are shared"},
	{ID: OpPrintNum, Symbol: "Std_Basic_Util_siko_runtime_num", Alias: "print.num",
		Params: []Param{out(KindUnit), val("v", KindInt)},
		Doc:    "decimal digits and a newline to the output sink"},
	{ID: OpPrintStr, Symbol: "Std_Basic_Util_siko_runtime_str", Alias: "print.str",
		Params: []Param{out(KindUnit), ref("v", KindString)},
		Doc:    "length raw bytes and a newline to the output sink"},
	{ID: OpPrintBool, Symbol: "Std_Basic_Util_siko_runtime_bool", Alias: "print.bool",
		Params: []Param{out(KindUnit), val("v", KindBool)},
		Doc:    "true or false and a newline to the output sink"},
	{ID: OpAbort, Symbol: "Std_Basic_Util_siko_runtime_abort", Alias: "abort",
		NoReturn: true,
		Doc:      "fixed diagnostic line, then process termination"},
}

var byName = func() map[string]int {
	m := make(map[string]int, 2*len(catalogue))
	for i, op := range catalogue {
		m[op.Symbol] = i
		m[op.Alias] = i
	}
	return m
}()

// Ops returns the full operation catalogue in declaration order.
func Ops() []Op {
	ops := make([]Op, len(catalogue))
	copy(ops, catalogue)
	return ops
}

// Lookup resolves a C symbol or a short alias to its catalogue entry.
func Lookup(name string) (Op, bool) {
	i, ok := byName[name]
	if !ok {
		return Op{}, false
	}
	return catalogue[i], true
}

// OpByID returns the catalogue entry for id.
func OpByID(id OpID) (Op, bool) {
	if id == 0 || int(id) > len(catalogue) {
		return Op{}, false
	}
	return catalogue[id-1], true
}
