package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestPipelineCmds_Help(t *testing.T) {
	for _, verb := range []string{"generate", "image", "ready", "post", "retry"} {
		out := execArgs(t, verb, "--help")
		if !strings.Contains(out, "--all") {
			t.Errorf("%s help missing --all flag: %s", verb, out)
		}
		if !strings.Contains(out, "--config") {
			t.Errorf("%s help missing --config flag: %s", verb, out)
		}
	}
}

func TestPipelineCmd_RequiresIDsOrAll(t *testing.T) {
	configPath := writeTestConfig(t)
	execArgs(t, "db", "init", "-c", configPath)

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"generate", "-c", configPath})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error without IDs or --all")
	}
}

func TestReadyCmd_All(t *testing.T) {
	configPath := writeTestConfig(t)
	execArgs(t, "db", "init", "-c", configPath)
	execArgs(t, "db", "seed", "-c", configPath)

	// One seeded item sits at WRITTEN; ready --all advances it without any
	// agent call.
	out := execArgs(t, "ready", "--all", "-c", configPath)
	if !strings.Contains(out, "[1/1]") {
		t.Errorf("output missing progress: %s", out)
	}
	if !strings.Contains(out, "1 item(s) processed") {
		t.Errorf("output = %s", out)
	}

	out = execArgs(t, "video", "list", "-c", configPath, "--stage", "READY_TO_POST")
	if !strings.Contains(out, "2 video(s)") {
		t.Errorf("expected 2 READY_TO_POST after ready --all: %s", out)
	}
}

func TestReadyCmd_NothingToDo(t *testing.T) {
	configPath := writeTestConfig(t)
	execArgs(t, "db", "init", "-c", configPath)

	out := execArgs(t, "ready", "--all", "-c", configPath)
	if !strings.Contains(out, "No WRITTEN items") {
		t.Errorf("output = %s", out)
	}
}
