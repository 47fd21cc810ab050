package ipc_test

import (
	"context"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"framekey/internal/daemon"
	"framekey/internal/engine"
	"framekey/internal/ipc"
	"framekey/internal/logging"
	"framekey/internal/notify"
	"framekey/internal/records"
	"framekey/internal/selection"
	"framekey/internal/testsupport"
)

type stubFingerprinter struct{}

func (stubFingerprinter) Extract(context.Context, string) (string, error) {
	return "#102030,#405060,#708090,#A0B0C0", nil
}

type stubSelection struct{}

func (stubSelection) SelectedFile(context.Context) (string, error) {
	return "", selection.ErrNoSelection
}

func TestIPCServerClient(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	logger := logging.NewNop()

	store := records.NewStore(cfg.Paths.RecordFile)
	notifier := notify.NewService(cfg)
	eng, err := engine.New(store, stubFingerprinter{}, notifier, logger)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	proc, err := engine.NewProcessor(eng, logger)
	if err != nil {
		t.Fatalf("engine.NewProcessor: %v", err)
	}
	d, err := daemon.New(cfg, store, proc, stubSelection{}, notifier, logger)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() {
		d.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	if err := d.Start(ctx); err != nil {
		t.Fatalf("daemon.Start: %v", err)
	}

	var stopped atomic.Bool
	socket := filepath.Join(cfg.Paths.LogDir, "framekeyd.sock")
	srv, err := ipc.NewServer(ctx, socket, d, func() { stopped.Store(true) }, logger)
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping IPC server test: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()
	t.Cleanup(func() {
		srv.Close()
	})

	time.Sleep(50 * time.Millisecond)

	client, err := ipc.Dial(socket)
	if err != nil {
		t.Fatalf("ipc.Dial: %v", err)
	}
	t.Cleanup(func() {
		client.Close()
	})

	status, err := client.Status()
	if err != nil {
		t.Fatalf("Status RPC failed: %v", err)
	}
	if !status.Running {
		t.Fatal("expected daemon to be running")
	}
	if status.RecordFile != cfg.Paths.RecordFile {
		t.Fatalf("unexpected record file: %s", status.RecordFile)
	}

	path := testsupport.WriteVideoStub(t, "2025-05-07_08-22-55 1132 My Show.mp4")
	submitResp, err := client.Submit(path)
	if err != nil {
		t.Fatalf("Submit RPC failed: %v", err)
	}
	if submitResp.Outcome != "accepted" {
		t.Fatalf("expected accepted outcome, got %#v", submitResp)
	}

	dupResp, err := client.Submit(path)
	if err != nil {
		t.Fatalf("duplicate Submit RPC failed: %v", err)
	}
	if dupResp.Outcome != "rejected" || dupResp.Reason != "duplicate filename" {
		t.Fatalf("unexpected duplicate response: %#v", dupResp)
	}

	recordsResp, err := client.Records()
	if err != nil {
		t.Fatalf("Records RPC failed: %v", err)
	}
	if len(recordsResp.Records) != 1 || recordsResp.Records[0].Filename != filepath.Base(path) {
		t.Fatalf("unexpected records response: %#v", recordsResp.Records)
	}

	triggerResp, err := client.Trigger()
	if err != nil {
		t.Fatalf("Trigger RPC failed: %v", err)
	}
	if triggerResp.Queued {
		t.Fatalf("expected nothing queued without a selection, got %#v", triggerResp)
	}

	notifyResp, err := client.TestNotification()
	if err != nil {
		t.Fatalf("TestNotification RPC failed: %v", err)
	}
	if !notifyResp.Sent {
		t.Fatalf("expected test notification to succeed, got %#v", notifyResp)
	}

	stopResp, err := client.Stop()
	if err != nil {
		t.Fatalf("Stop RPC failed: %v", err)
	}
	if !stopResp.Stopped || !stopped.Load() {
		t.Fatal("expected stop to invoke shutdown")
	}
}
