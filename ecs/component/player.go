package component

type PlayerTag struct {
	Name string
}

var PlayerTagComponent = NewComponent[PlayerTag]()
