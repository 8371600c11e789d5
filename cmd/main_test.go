// 指示: miu200521358
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOptionsWithFlags(t *testing.T) {
	errBuf := bytes.NewBuffer(nil)
	opts, err := parseOptions([]string{"-in", "scene.json", "-type", "IK", "-mirror"}, errBuf)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if opts.inputPath != "scene.json" {
		t.Fatalf("inputPath mismatch: %s", opts.inputPath)
	}
	if opts.moduleType != "IK" {
		t.Fatalf("moduleType mismatch: %s", opts.moduleType)
	}
	if !opts.autoMirror {
		t.Fatalf("autoMirror should be enabled")
	}
}

func TestParseOptionsWithPositionalInput(t *testing.T) {
	errBuf := bytes.NewBuffer(nil)
	opts, err := parseOptions([]string{"scene.json"}, errBuf)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if opts.inputPath != "scene.json" {
		t.Fatalf("inputPath mismatch: %s", opts.inputPath)
	}
	if opts.moduleType != "FKIK" {
		t.Fatalf("default module type mismatch: %s", opts.moduleType)
	}
}

func TestParseOptionsRejectsUnknownModuleType(t *testing.T) {
	errBuf := bytes.NewBuffer(nil)
	_, err := parseOptions([]string{"-in", "scene.json", "-type", "TAIL"}, errBuf)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "TAIL") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunBuildsModuleFromSceneFile(t *testing.T) {
	scenePath := filepath.Join(t.TempDir(), "scene.json")
	sceneJSON := `{"joints":[
		{"name":"L_arm_01_jnt","position":[0,0,0]},
		{"name":"L_arm_02_jnt","position":[2,0,-0.5],"parent":"L_arm_01_jnt"},
		{"name":"L_arm_03_jnt","position":[4,0,0],"parent":"L_arm_02_jnt"}
	]}`
	if err := os.WriteFile(scenePath, []byte(sceneJSON), 0o644); err != nil {
		t.Fatalf("write scene file failed: %v", err)
	}

	outBuf := bytes.NewBuffer(nil)
	errBuf := bytes.NewBuffer(nil)
	if err := run([]string{"-in", scenePath, "-type", "FKIK"}, outBuf, errBuf); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	output := outBuf.String()
	if !strings.Contains(output, "FKIKモジュール構築完了: side=L joints=3") {
		t.Fatalf("status line missing from output: %s", output)
	}
	if !strings.Contains(output, "L_FKIK_000") {
		t.Fatalf("registered module id missing from output: %s", output)
	}
}

func TestRunRejectsUndefinedParent(t *testing.T) {
	scenePath := filepath.Join(t.TempDir(), "scene.json")
	sceneJSON := `{"joints":[{"name":"L_arm_02_jnt","position":[1,0,0],"parent":"L_arm_01_jnt"}]}`
	if err := os.WriteFile(scenePath, []byte(sceneJSON), 0o644); err != nil {
		t.Fatalf("write scene file failed: %v", err)
	}

	outBuf := bytes.NewBuffer(nil)
	if err := run([]string{"-in", scenePath}, outBuf, bytes.NewBuffer(nil)); err == nil {
		t.Fatalf("expected error for undefined parent")
	}
}
