package theme_test

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/macropower/tless/pkg/theme"
	"github.com/macropower/tless/pkg/uitest"
)

func TestPlain(t *testing.T) {
	t.Parallel()

	p := theme.Plain()
	assert.Equal(t, "END ", p.Banner("END "))
	assert.Equal(t, "$ ", p.Prompt("$ "))
	assert.Equal(t, "oops", p.Error("oops"))
	assert.Equal(t, "$ ls", p.Subtle("$ ls"))
}

func TestDefault_Banner(t *testing.T) {
	uitest.SetupColorProfile()

	out := theme.New().Banner("END ")
	assert.Equal(t, "END ", ansi.Strip(out))

	v := uitest.NewANSIStyleVerifier(out)
	v.ContainsSGR(t, uitest.SGRReverse)
}
