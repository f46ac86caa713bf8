package uitest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macropower/tless/pkg/uitest"
)

func TestANSIStyleVerifier(t *testing.T) {
	t.Parallel()

	v := uitest.NewANSIStyleVerifier("plain \x1b[1;7mbanner\x1b[0m tail")

	assert.Equal(t, "plain banner tail", v.PlainText())
	v.ContainsPlainText(t, "banner")
	v.ContainsSGR(t, uitest.SGRReverse)
	v.StyledText(t, "banner", uitest.SGRBold)

	uitest.NewANSIStyleVerifier("nothing here").NoSGR(t)
}
