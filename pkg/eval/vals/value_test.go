package vals

import (
	"math"
	"testing"

	"src.dpm.sh/pkg/parse"
	"src.dpm.sh/pkg/tt"
)

func TestInt(t *testing.T) {
	TestValue(t, Int(42)).Kind("int").Truthy(true).String("42").Repr("42").
		Equal(Int(42)).NotEqual(Int(41), Str("42")).RoundTrips()
	TestValue(t, Int(0)).Truthy(false).RoundTrips()
	TestValue(t, Int(-7)).String("-7").Truthy(true).RoundTrips()
}

func TestStr(t *testing.T) {
	TestValue(t, Str("a b")).Kind("string").Truthy(true).String("a b").Repr(`"a b"`).
		Equal(Str("a b")).NotEqual(Str("a"), Int(0)).RoundTrips()
	TestValue(t, Str("")).Truthy(true).Repr(`""`).RoundTrips()
	TestValue(t, Str("say \"x\"\n")).Repr(`"say \"x\"\n"`).RoundTrips()
}

func TestBool(t *testing.T) {
	TestValue(t, Bool(true)).Kind("bool").Truthy(true).String("true").Repr("#t").
		NotEqual(Int(1), Str("true")).RoundTrips()
	TestValue(t, Bool(false)).Truthy(false).String("false").Repr("#f").RoundTrips()
}

func TestNil(t *testing.T) {
	TestValue(t, Nil).Kind("nil").Truthy(false).String("nil").Repr("#nil").
		Equal(Nil, nil).NotEqual(MakeList(), Int(0)).RoundTrips()
	TestValue(t, nil).Kind("nil").String("nil").Equal(Nil)
}

func TestList(t *testing.T) {
	TestValue(t, Ints(1, 2)).Kind("list").Truthy(true).String("(1 2)").Repr("(1 2)").
		Equal(MakeList(Int(1), Int(2))).NotEqual(Ints(2, 1), Ints(1)).RoundTrips()
	TestValue(t, MakeList()).Truthy(true).String("()").RoundTrips()

	nested := MakeList(Str("sum"), Ints(1, 2), MakeList(Bool(true), Nil), Str("x y"))
	TestValue(t, nested).String("(sum (1 2) (true nil) x y)").
		Repr(`("sum" (1 2) (#t #nil) "x y")`).RoundTrips()
}

func TestMakeList_Copies(t *testing.T) {
	inner := []Value{Int(1)}
	l := MakeList(MakeList(inner...), Str("x"))
	inner[0] = Int(2)
	items := l.Items()
	items[1] = Str("y")
	if !Equal(l, MakeList(Ints(1), Str("x"))) {
		t.Errorf("list changed through shared storage: %s", Repr(l))
	}
	if l.Len() != 2 || !Equal(l.Index(0), Ints(1)) {
		t.Errorf("Len/Index mismatch: %d %s", l.Len(), Repr(l.Index(0)))
	}
}

func TestFromNode(t *testing.T) {
	tt.Test(t, tt.Fn("FromNode", FromNode).RetsFmt("(%v, %v)"), tt.Table{
		tt.Args(parse.Node(parse.IntNode(5))).Rets(Int(5), nil),
		tt.Args(parse.Node(parse.FloatNode(2.9))).Rets(Int(2), nil),
		tt.Args(parse.Node(parse.FloatNode(-2.9))).Rets(Int(-2), nil),
		tt.Args(parse.Node(parse.FloatNode(1e300))).Rets(Int(math.MaxInt64), nil),
		tt.Args(parse.Node(parse.FloatNode(-1e300))).Rets(Int(math.MinInt64), nil),
		tt.Args(parse.Node(parse.SymbolNode("abc"))).Rets(Str("abc"), nil),
		tt.Args(parse.Node(parse.NilNode())).Rets(Nil, nil),
	})
}

func TestFromNode_Form(t *testing.T) {
	n, err := parse.ParseOne(parse.SourceForTest(`(a "b" (1 . 2) #t)`))
	if err != nil {
		t.Fatal(err)
	}
	v, err := FromNode(n)
	if err != nil {
		t.Fatal(err)
	}
	TestValue(t, v).Equal(MakeList(Str("a"), Str("b"), Ints(1, 2), Bool(true)))
}

func TestFromNode_UnsupportedLiteral(t *testing.T) {
	for _, code := range []string{`#\a`, "#:key", `(list #\b)`} {
		n, err := parse.ParseOne(parse.SourceForTest(code))
		if err != nil {
			t.Fatal(err)
		}
		_, err = FromNode(n)
		if _, ok := err.(*UnsupportedLiteralError); !ok {
			t.Errorf("FromNode(%s) returns error %v, want *UnsupportedLiteralError", code, err)
		}
	}
}

func TestToNode_HeadBecomesSymbol(t *testing.T) {
	n := ToNode(MakeList(Str("sum"), Int(1), Str("two")))
	want := parse.FormNode(parse.SymbolNode("sum"), parse.IntNode(1), parse.StringNode("two"))
	if !parse.Equal(n, want) {
		t.Errorf("ToNode -> %s, want %s", n, want)
	}
	n = ToNode(MakeList(Str("not a symbol")))
	if _, ok := parse.IsSymbol(n.(*parse.Form).Head()); ok {
		t.Errorf("string with spaces became a symbol")
	}
}

func TestConversionHelpers(t *testing.T) {
	tt.Test(t, tt.Fn("ToInt", ToInt), tt.Table{
		tt.Args(Value(Int(3))).Rets(int64(3), nil),
		tt.Args(Value(Str("3"))).Rets(int64(0), tt.Any),
	})
	if _, err := ToInt(Str("x")); err == nil || err.Error() != "expected integer, got: x" {
		t.Errorf("ToInt error = %v", err)
	}
	if s, err := ToStr(Str("x")); s != "x" || err != nil {
		t.Errorf("ToStr -> %q, %v", s, err)
	}
	if _, err := ToStr(Int(1)); err == nil {
		t.Errorf("ToStr(Int) returns no error")
	}
	if l, err := ToList(Ints(1, 2)); len(l) != 2 || err != nil {
		t.Errorf("ToList -> %v, %v", l, err)
	}
	if _, err := ToList(Nil); err == nil || err.Error() != "expected list, got: nil" {
		t.Errorf("ToList(Nil) error = %v", err)
	}
	if b, err := ToBool(Bool(true)); !b || err != nil {
		t.Errorf("ToBool -> %v, %v", b, err)
	}
	if _, err := ToBool(Int(1)); err == nil {
		t.Errorf("ToBool(Int) returns no error")
	}
	TestValue(t, Strings("a", "b")).Equal(MakeList(Str("a"), Str("b")))
	TestValue(t, Bools(true, false)).String("(true false)")
}
