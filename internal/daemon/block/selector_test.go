package block

import (
	"context"
	"testing"
)

func TestParseSelector(t *testing.T) {
	tests := []struct {
		input string
		want  Selector
	}{
		{"date", Selector{Kind: RunBlock, Name: "date"}},
		{"vol:50%", Selector{Kind: SetBlock, Name: "vol", Text: "50%"}},
		{"clock:12:30", Selector{Kind: SetBlock, Name: "clock", Text: "12:30"}},
		{"vol:", Selector{Kind: SetBlock, Name: "vol", Text: ""}},
		{":text", Selector{Kind: SetBlock, Name: "", Text: "text"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseSelector(tt.input)
			if got != tt.want {
				t.Errorf("ParseSelector(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			if got.String() != tt.input {
				t.Errorf("String() = %q, want %q", got.String(), tt.input)
			}
		})
	}
}

func TestSelectorApply(t *testing.T) {
	b := New("x", "echo ran", "")

	if report := ParseSelector("x:hello").Apply(context.Background(), b); report != "[x]: set to 'hello'" {
		t.Errorf("set report = %q", report)
	}
	if b.Output() != "hello" {
		t.Errorf("Output() = %q after set", b.Output())
	}

	if report := ParseSelector("x").Apply(context.Background(), b); report != "[x]: exit status 0" {
		t.Errorf("run report = %q", report)
	}
	if b.Output() != "ran" {
		t.Errorf("Output() = %q after run", b.Output())
	}
}
