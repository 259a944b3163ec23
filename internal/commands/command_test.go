package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in   string
		want Command
	}{
		{"/add buy milk", Command{Type: TypeAddTask, Text: "buy milk"}},
		{"add   call  mom ", Command{Type: TypeAddTask, Text: "call  mom"}},
		{"note # Standup\n- ship it", Command{Type: TypeSaveNote, Text: "# Standup\n- ship it"}},
		{"done 2", Command{Type: TypeToggleTask, Index: 2}},
		{"rm #1", Command{Type: TypeDeleteTask, Index: 1}},
		{"unnote 3", Command{Type: TypeDeleteNote, Index: 3}},
		{"timer start", Command{Type: TypeStartTimer}},
		{"timer pause", Command{Type: TypePauseTimer}},
		{"timer reset", Command{Type: TypeResetTimer}},
		{"timer 15", Command{Type: TypeSelectDuration, Minutes: 15}},
		{"timer 5m", Command{Type: TypeSelectDuration, Minutes: 5}},
		{"THEME", Command{Type: TypeToggleTheme}},
		{"view Notes", Command{Type: TypeSelectView, View: "notes"}},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		tc.want.Raw = tc.in
		if cmd != tc.want {
			t.Fatalf("parse %q = %+v, want %+v", tc.in, cmd, tc.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in   string
		code ErrorCode
	}{
		{"", ErrCodeEmptyInput},
		{"  / ", ErrCodeEmptyInput},
		{"/unknown do x", ErrCodeUnknownCommand},
		{"add", ErrCodeInvalidArgument},
		{"done", ErrCodeInvalidArgument},
		{"done zero", ErrCodeInvalidArgument},
		{"rm 0", ErrCodeInvalidArgument},
		{"timer", ErrCodeInvalidArgument},
		{"timer -5", ErrCodeInvalidArgument},
		{"view", ErrCodeInvalidArgument},
	}
	for _, tc := range cases {
		_, err := Parse(tc.in)
		if err == nil {
			t.Fatalf("parse %q: expected error", tc.in)
		}
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != tc.code {
			t.Fatalf("parse %q: expected %s, got %v", tc.in, tc.code, err)
		}
	}
}

func TestResolveRowIndex(t *testing.T) {
	rows := Rows{Tasks: []int64{30, 20, 10}, Notes: []int64{7}}

	cmd, err := Parse("done 2")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	resolved, err := Resolve(cmd, rows)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.ID != 20 {
		t.Fatalf("expected id 20, got %d", resolved.ID)
	}

	cmd, _ = Parse("unnote 1")
	resolved, err = Resolve(cmd, rows)
	if err != nil || resolved.ID != 7 {
		t.Fatalf("expected note id 7, got %d err=%v", resolved.ID, err)
	}

	cmd, _ = Parse("rm 4")
	_, err = Resolve(cmd, rows)
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected out of range error, got %v", err)
	}

	passthrough, err := Resolve(ToggleTheme(), rows)
	if err != nil || passthrough.Type != TypeToggleTheme {
		t.Fatalf("expected passthrough, got %+v err=%v", passthrough, err)
	}
	direct, err := Resolve(DeleteTask(99), rows)
	if err != nil || direct.ID != 99 {
		t.Fatalf("expected direct id kept, got %+v err=%v", direct, err)
	}
}
