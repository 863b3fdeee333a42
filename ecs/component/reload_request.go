package component

import "github.com/milk9111/thumbstick/locomotion"

// ReloadRequest carries a replacement controller configuration, usually
// from a prefab file that changed on disk. The reload system swaps the
// controller and removes the request.
type ReloadRequest struct {
	Config locomotion.Config
	Source string
}

var ReloadRequestComponent = NewComponent[ReloadRequest]()
