package flip

import (
	"encoding/json"
	"testing"

	"github.com/etnz/flip/date"
	"github.com/shopspring/decimal"
)

func TestJSONObjectWriter(t *testing.T) {
	type inner struct {
		Z string `json:"z"`
		A int    `json:"a"`
	}
	testCases := []struct {
		name  string
		build func(w *jsonObjectWriter)
		want  string
	}{
		{"empty", func(w *jsonObjectWriter) {}, `{}`},
		{"order kept", func(w *jsonObjectWriter) {
			w.Append("b", 1).Append("a", "x")
		}, `{"b":1,"a":"x"}`},
		{"embedded fields keep their order", func(w *jsonObjectWriter) {
			w.Append("first", true).EmbedFrom(inner{Z: "z", A: 2}).Append("last", json.RawMessage(`{"n":1}`))
		}, `{"first":true,"z":"z","a":2,"last":{"n":1}}`},
		{"zero values skipped", func(w *jsonObjectWriter) {
			w.Optional("s", "").Optional("n", 0).Optional("d", decimal.Zero).Optional("on", date.Date{}).
				Optional("null", decimal.NullDecimal{}).Optional("kept", decimal.NewFromInt(3))
		}, `{"kept":3}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var w jsonObjectWriter
			tc.build(&w)
			got, err := w.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("MarshalJSON() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestJSONObjectWriterErrors(t *testing.T) {
	var w jsonObjectWriter
	w.EmbedFrom([]int{1, 2}).Append("a", 1)
	if _, err := w.MarshalJSON(); err == nil {
		t.Errorf("MarshalJSON() after embedding an array, want error")
	}

	var v jsonObjectWriter
	v.Append("ch", make(chan int))
	if _, err := v.MarshalJSON(); err == nil {
		t.Errorf("MarshalJSON() of a channel, want error")
	}
}
