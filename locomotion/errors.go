package locomotion

import "errors"

var (
	ErrInvalidConfig = errors.New("locomotion: invalid config")
	ErrNoSampler     = errors.New("locomotion: no input sampler bound")
	ErrNoMover       = errors.New("locomotion: no physics mover bound")
	ErrNoBody        = errors.New("locomotion: no body node bound")
	ErrNoPivot       = errors.New("locomotion: no camera pivot bound")
)
