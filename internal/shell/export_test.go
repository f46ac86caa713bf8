package shell

var (
	KeyEvents = keyEvents
	Split     = split
)

type Stage = stage
