package jsonstat

import "testing"

func TestValueKinds(t *testing.T) {
	tests := []struct {
		v       Value
		kind    Kind
		str     string
		missing bool
	}{
		{NumberValue(4.6), KindNumber, "4.6", false},
		{NumberValue(-0.5), KindNumber, "-0.5", false},
		{NumberValue(1e21), KindNumber, "1000000000000000000000", false},
		{StatusValue(".."), KindStatus, "..", false},
		{MissingValue(), KindMissing, "", true},
		{Value{}, KindMissing, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.str, func(t *testing.T) {
			if got := tt.v.Kind(); got != tt.kind {
				t.Errorf("Kind() = %s, want %s", got, tt.kind)
			}
			if got := tt.v.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
			if got := tt.v.IsMissing(); got != tt.missing {
				t.Errorf("IsMissing() = %v, want %v", got, tt.missing)
			}
			_, isNum := tt.v.Float64()
			if isNum != (tt.kind == KindNumber) {
				t.Errorf("Float64() ok = %v for kind %s", isNum, tt.kind)
			}
			_, isStatus := tt.v.StatusCode()
			if isStatus != (tt.kind == KindStatus) {
				t.Errorf("StatusCode() ok = %v for kind %s", isStatus, tt.kind)
			}
		})
	}

	if got := Kind(9).String(); got != "kind(9)" {
		t.Errorf("Kind(9).String() = %q", got)
	}
}
