package slugs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"My super header", "my-super-header"},
		{"I love headers!", "i-love-headers"},
		{"C++ guide", "c-guide"},
		{"snake_case_name", "snake_case_name"},
		{"Mixed: punct, (kept) dash-ok", "mixed-punct-kept-dash-ok"},
		{"", ""},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}
