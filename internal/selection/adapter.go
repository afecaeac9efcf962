package selection

// InterceptSelection wraps a MutableHost so that selection writes can be
// observed. Every other member forwards to the wrapped host untouched; only
// SetSelection is intercepted, and the write still reaches the host before
// onSet runs. This is an explicit forwarding adapter, not dynamic
// interception: the wrapper implements the same interface as the host.
func InterceptSelection(host MutableHost, onSet func(start, end int)) MutableHost {
	return &interceptedHost{MutableHost: host, onSet: onSet}
}

type interceptedHost struct {
	MutableHost
	onSet func(start, end int)
}

func (h *interceptedHost) SetSelection(start, end int) {
	h.MutableHost.SetSelection(start, end)
	if h.onSet != nil {
		h.onSet(start, end)
	}
}
