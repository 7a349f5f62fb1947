package host

import (
	"context"
	"sync"

	"github.com/kyaoi/markread/internal/viewer"
)

var _ Dialog = (*Broker)(nil)

// DialogRequest is an open dialog waiting for the user's answer.
type DialogRequest struct {
	Title   string
	Filters []viewer.Filter

	once  sync.Once
	reply chan dialogReply
}

type dialogReply struct {
	paths []string
	err   error
}

// NewDialogRequest returns an unanswered request.
func NewDialogRequest(title string, filters []viewer.Filter) *DialogRequest {
	return &DialogRequest{
		Title:   title,
		Filters: filters,
		reply:   make(chan dialogReply, 1),
	}
}

// Respond completes the request. Only the first call has an effect.
func (r *DialogRequest) Respond(paths []string, err error) {
	r.once.Do(func() {
		r.reply <- dialogReply{paths: paths, err: err}
	})
}

// Wait blocks until the request is answered or ctx ends.
func (r *DialogRequest) Wait(ctx context.Context) ([]string, error) {
	select {
	case rep := <-r.reply:
		return rep.paths, rep.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Broker hands dialog requests from the shell to the UI that draws them.
type Broker struct {
	requests chan *DialogRequest
}

// NewBroker returns an empty Broker.
func NewBroker() *Broker {
	return &Broker{requests: make(chan *DialogRequest)}
}

// Requests delivers pending dialogs to the UI.
func (b *Broker) Requests() <-chan *DialogRequest {
	return b.requests
}

// ShowOpenDialog blocks until the UI answers the request or ctx ends.
func (b *Broker) ShowOpenDialog(ctx context.Context, title string, filters []viewer.Filter) ([]string, error) {
	req := NewDialogRequest(title, filters)
	select {
	case b.requests <- req:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return req.Wait(ctx)
}
