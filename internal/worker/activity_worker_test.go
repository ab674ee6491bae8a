package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/ndrewpacheco/warbler/internal/logger"
	"github.com/ndrewpacheco/warbler/internal/model"
)

type fakeRecorder struct {
	got []model.Activity
	err error
}

func (f *fakeRecorder) Record(_ context.Context, a model.Activity) error {
	f.got = append(f.got, a)
	return f.err
}

func TestProcess(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		recordErr     error
		wantRecorded  int
		wantMalformed bool
		wantErr       bool
	}{
		{name: "follow", body: `{"actor_id":1,"recipient_id":2,"kind":"followed"}`, wantRecorded: 1},
		{name: "post", body: `{"actor_id":1,"kind":"posted","message_id":5}`, wantRecorded: 1},
		{name: "not json", body: `{`, wantMalformed: true, wantErr: true},
		{name: "no actor", body: `{"kind":"followed","recipient_id":2}`, wantMalformed: true, wantErr: true},
		{name: "no kind", body: `{"actor_id":1,"recipient_id":2}`, wantMalformed: true, wantErr: true},
		{name: "store down", body: `{"actor_id":1,"recipient_id":2,"kind":"followed"}`, recordErr: errors.New("db down"), wantRecorded: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeRecorder{err: tt.recordErr}
			w := NewActivityWorker(nil, rec, "warbler.activity", logger.Discard())

			err := w.process(context.Background(), []byte(tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("process() error = %v, wantErr %v", err, tt.wantErr)
			}
			if errors.Is(err, errMalformed) != tt.wantMalformed {
				t.Errorf("process() malformed = %v, want %v", errors.Is(err, errMalformed), tt.wantMalformed)
			}
			if len(rec.got) != tt.wantRecorded {
				t.Errorf("recorded %d activities, want %d", len(rec.got), tt.wantRecorded)
			}
		})
	}
}

func TestProcessDecodesMessageID(t *testing.T) {
	rec := &fakeRecorder{}
	w := NewActivityWorker(nil, rec, "q", logger.Discard())

	if err := w.process(context.Background(), []byte(`{"actor_id":3,"kind":"posted","message_id":9}`)); err != nil {
		t.Fatal(err)
	}
	got := rec.got[0]
	if got.Kind != model.ActivityPosted || got.MessageID == nil || *got.MessageID != 9 {
		t.Errorf("decoded %+v", got)
	}
}

func TestCloseWithoutStart(t *testing.T) {
	w := NewActivityWorker(nil, &fakeRecorder{}, "q", logger.Discard())
	w.Close()
}
