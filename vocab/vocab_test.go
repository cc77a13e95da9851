package vocab

import "testing"

func testTable() map[string]int {
	return map[string]int{
		"<pad>": 0, "<sos>": 1, "<eos>": 2,
		"x": 3, "2": 4, "^": 5, "{": 6, "}": 7, "+": 8, "1": 9,
	}
}

func TestFromJSONBare(t *testing.T) {
	v, err := FromJSON([]byte(`{"<pad>":0,"<sos>":1,"<eos>":2,"x":3}`))
	if err != nil {
		t.Fatal(err)
	}
	if v.Size() != 4 {
		t.Errorf("size = %d, want 4", v.Size())
	}
	if id, ok := v.ID("x"); !ok || id != 3 {
		t.Errorf("x id = %d, %v", id, ok)
	}
}

func TestFromJSONWrapped(t *testing.T) {
	v, err := FromJSON([]byte(`{"word2idx":{"<pad>":0,"<sos>":1,"<eos>":2,"y":3}}`))
	if err != nil {
		t.Fatal(err)
	}
	if id, ok := v.ID("y"); !ok || id != 3 {
		t.Errorf("y id = %d, %v", id, ok)
	}
}

func TestFromJSONBad(t *testing.T) {
	if _, err := FromJSON([]byte(`[1,2,3]`)); err == nil {
		t.Error("non-object vocabulary should fail")
	}
	if _, err := FromJSON([]byte(`{}`)); err == nil {
		t.Error("empty vocabulary should fail")
	}
}

func TestSpecialsByName(t *testing.T) {
	v, err := New(map[string]int{"<pad>": 7, "<sos>": 8, "<eos>": 9, "x": 0})
	if err != nil {
		t.Fatal(err)
	}
	if v.Pad() != 7 || v.Sos() != 8 || v.Eos() != 9 {
		t.Errorf("specials = %d/%d/%d", v.Pad(), v.Sos(), v.Eos())
	}
}

func TestSpecialsFallback(t *testing.T) {
	v, err := New(map[string]int{"a": 0, "b": 1, "c": 2, "x": 3})
	if err != nil {
		t.Fatal(err)
	}
	if v.Pad() != 0 || v.Sos() != 1 || v.Eos() != 2 {
		t.Errorf("specials = %d/%d/%d, want 0/1/2", v.Pad(), v.Sos(), v.Eos())
	}
}

func TestIDsToSymbols(t *testing.T) {
	v, err := New(testTable())
	if err != nil {
		t.Fatal(err)
	}

	// sos x ^ { 2 } eos, with an unknown id in the middle
	ids := []int{1, 3, 5, 6, 99, 4, 7, 2}
	got := SymbolsToString(v.IDsToSymbols(ids))
	if got != "x ^ { 2 }" {
		t.Errorf("got %q", got)
	}
}

func TestNumberMask(t *testing.T) {
	v, err := New(testTable())
	if err != nil {
		t.Fatal(err)
	}

	allowed := v.NumberMask()
	if len(allowed) != v.Size() {
		t.Fatalf("mask size = %d, want %d", len(allowed), v.Size())
	}

	check := func(word string, want bool) {
		id, ok := v.ID(word)
		if !ok {
			t.Fatalf("missing %q", word)
		}
		if allowed[id] != want {
			t.Errorf("%q allowed = %v, want %v", word, allowed[id], want)
		}
	}

	check("1", true)
	check("2", true)
	check("+", true)
	check("x", false)
	check("^", false)
	check("{", false)

	if !allowed[v.Eos()] {
		t.Error("eos must stay allowed")
	}
	if allowed[v.Sos()] {
		t.Error("sos must not be allowed")
	}
}
