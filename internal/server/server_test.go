package server

import (
	"reflect"
	"testing"
)

func TestSplitOrigins(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"http://a.com", []string{"http://a.com"}},
		{"http://a.com, http://b.com", []string{"http://a.com", "http://b.com"}},
		{" http://a.com ,, http://b.com ", []string{"http://a.com", "http://b.com"}},
	}
	for _, tc := range cases {
		if got := splitOrigins(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("splitOrigins(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
