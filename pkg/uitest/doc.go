// Package uitest provides helpers for testing Bubble Tea programs and styled
// terminal output.
//
//	func TestShell(t *testing.T) {
//	    t.Parallel()
//	    uitest.SetupColorProfile()
//
//	    tm := uitest.NewTestModel(t, shell.New(), uitest.Short)
//	    uitest.Type(tm, "seq 40 | less")
//	    uitest.Enter(tm)
//	    uitest.WaitForText(t, tm.Output(), "1", ":")
//	}
//
// Styles are checked by SGR parameter:
//
//	v := uitest.NewANSIStyleVerifier(out)
//	v.ContainsSGR(t, uitest.SGRReverse)
package uitest
