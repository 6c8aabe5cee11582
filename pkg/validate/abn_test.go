package validate_test

import (
	"testing"

	"github.com/dealdocs/termsheet/pkg/validate"
)

func TestValidABN(t *testing.T) {
	t.Parallel()

	cases := []struct {
		abn  string
		want bool
	}{
		{"51824753556", true},
		{"51 824 753 556", true},
		{"12345678901", false},
		{"51824753557", false},
		{"5182475355", false},
		{"518247535566", false},
		{"5182475355a", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := validate.ValidABN(tc.abn); got != tc.want {
			t.Fatalf("ValidABN(%q) = %v, want %v", tc.abn, got, tc.want)
		}
	}
}
