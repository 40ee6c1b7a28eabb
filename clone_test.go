package multijson

import "testing"

func TestCloneOptions_Nil(t *testing.T) {
	if cloneOptions(nil) != nil {
		t.Error("cloneOptions(nil) should be nil")
	}
}

func TestCloneOptions_Deep(t *testing.T) {
	orig := Options{
		"nested": map[string]any{"a": 1},
		"opts":   Options{"b": 2},
		"list":   []any{map[string]any{"c": 3}},
		"names":  []string{"x"},
		"flag":   true,
	}

	c := cloneOptions(orig)
	c["nested"].(map[string]any)["a"] = 100
	c["opts"].(Options)["b"] = 200
	c["list"].([]any)[0].(map[string]any)["c"] = 300
	c["names"].([]string)[0] = "y"
	c["flag"] = false

	if orig["nested"].(map[string]any)["a"] != 1 {
		t.Error("nested map should be copied")
	}
	if orig["opts"].(Options)["b"] != 2 {
		t.Error("nested Options should be copied")
	}
	if orig["list"].([]any)[0].(map[string]any)["c"] != 3 {
		t.Error("maps inside slices should be copied")
	}
	if orig["names"].([]string)[0] != "x" {
		t.Error("string slices should be copied")
	}
	if orig["flag"] != true {
		t.Error("top-level entries should be copied")
	}
}
