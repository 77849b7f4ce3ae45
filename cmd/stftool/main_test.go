package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-stft/dsp/stream"
	"github.com/cwbudde/algo-stft/internal/testutil"
	"github.com/cwbudde/algo-stft/internal/wavio"
)

func writeInput(t *testing.T, samples []float64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if _, err := wavio.Write(f, 16000, 16, stream.FromSlice(samples)); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func readOutput(t *testing.T, path string) []float64 {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	r, err := wavio.ReadChannel(f, 0)
	if err != nil {
		t.Fatalf("ReadChannel: %v", err)
	}
	out, err := stream.Collect[float64](r)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return out
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	return records
}

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestResynth(t *testing.T) {
	for _, half := range []bool{false, true} {
		in := testutil.DeterministicNoise(5, 0.5, 3000)
		inPath := writeInput(t, in)
		outPath := filepath.Join(t.TempDir(), "out.wav")

		args := []string{"--frame-length", "256", "--frame-shift", "64", "resynth", inPath, outPath}
		if half {
			args = append(args[:4], "resynth", "--half", inPath, outPath)
		}
		if _, stderr, err := runCmd(t, args...); err != nil {
			t.Fatalf("half=%v: run error: %v (stderr %s)", half, err, stderr)
		}

		out := readOutput(t, outPath)
		if len(out) != len(in) {
			t.Fatalf("half=%v: output length=%d want=%d", half, len(out), len(in))
		}
		// Two 16-bit quantizations.
		testutil.RequireSliceNearlyEqual(t, out, in, 3.0/32768)
	}
}

func TestResynthDither(t *testing.T) {
	in := testutil.DeterministicNoise(9, 0.5, 2000)
	inPath := writeInput(t, in)
	outPath := filepath.Join(t.TempDir(), "out.wav")

	if _, stderr, err := runCmd(t, "--frame-length", "128", "--frame-shift", "32",
		"resynth", "--dither", "tpdf", inPath, outPath); err != nil {
		t.Fatalf("run error: %v (stderr %s)", err, stderr)
	}
	out := readOutput(t, outPath)
	if len(out) != len(in) {
		t.Fatalf("output length=%d want=%d", len(out), len(in))
	}
	// TPDF dither adds up to one LSB on top of the two quantizations.
	testutil.RequireSliceNearlyEqual(t, out, in, 4.0/32768)

	if _, _, err := runCmd(t, "resynth", "--dither", "pink", inPath, outPath); err == nil {
		t.Fatal("expected error for unknown dither type")
	}
}

func TestCepstrum(t *testing.T) {
	inPath := writeInput(t, testutil.DeterministicSine(300, 16000, 0.5, 4096))
	dir := t.TempDir()
	outPath := filepath.Join(dir, "ceps.csv")
	covPath := filepath.Join(dir, "cov.csv")

	stdout, stderr, err := runCmd(t,
		"--frame-length", "512", "--frame-shift", "128", "--order", "10", "--zeroth=false",
		"cepstrum", "--stats", "--covariance", covPath, inPath, outPath)
	if err != nil {
		t.Fatalf("run error: %v (stderr %s)", err, stderr)
	}

	records := readCSV(t, outPath)
	wantFrames := (4096 + 511) / 128
	if len(records) != wantFrames+1 {
		t.Fatalf("rows=%d want=%d", len(records), wantFrames+1)
	}
	if records[0][0] != "c1" || len(records[0]) != 10 || records[0][9] != "c10" {
		t.Fatalf("header=%v", records[0])
	}

	if !strings.Contains(stdout, "c1") || !strings.Contains(stdout, "Mean") {
		t.Fatalf("stats output missing: %q", stdout)
	}

	cov := readCSV(t, covPath)
	if len(cov) != 11 || len(cov[1]) != 10 {
		t.Fatalf("covariance shape=%dx%d want=11x10", len(cov), len(cov[1]))
	}
}

func TestEnvelope(t *testing.T) {
	inPath := writeInput(t, testutil.DeterministicNoise(9, 0.3, 2048))
	outPath := filepath.Join(t.TempDir(), "env.csv")

	_, stderr, err := runCmd(t,
		"--frame-length", "256", "--frame-shift", "64", "--cutoff-ratio", "2", "--order", "12",
		"envelope", "--frame", "5", "--points", "256", inPath, outPath)
	if err != nil {
		t.Fatalf("run error: %v (stderr %s)", err, stderr)
	}

	records := readCSV(t, outPath)
	// Header plus 256 envelope points; the 128-bin log spectrum column ends early.
	if len(records) != 257 {
		t.Fatalf("rows=%d want=257", len(records))
	}
	if records[1][0] == "" || records[200][0] != "" || records[200][1] == "" {
		t.Fatalf("unexpected ragged layout: %v / %v", records[1], records[200])
	}
}

func TestEnvelopeFrameOutOfRange(t *testing.T) {
	inPath := writeInput(t, testutil.DeterministicNoise(9, 0.3, 100))
	outPath := filepath.Join(t.TempDir(), "env.csv")

	_, _, err := runCmd(t, "--frame-length", "64", "--frame-shift", "16", "--order", "8",
		"envelope", "--frame", "50", inPath, outPath)
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Fatalf("err=%v want out of range", err)
	}
}

func TestInfo(t *testing.T) {
	stdout, _, err := runCmd(t, "--frame-length", "64", "--frame-shift", "16", "--order", "8", "info")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	for _, want := range []string{"synthesis gain", "0.666667", "1.500000", "unity reconstruction  true",
		"window ENBW (bins)    1.500", "window coherent gain  0.500"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("info output missing %q:\n%s", want, stdout)
		}
	}
}

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "stftool.yaml")
	content := "analysis:\n  frame_length: 128\n  frame_shift: 32\n  order: 6\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	stdout, _, err := runCmd(t, "--config", cfgPath, "--frame-shift", "16", "info")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	for _, want := range []string{"frame length          128", "frame shift           16", "order                 6"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("info output missing %q:\n%s", want, stdout)
		}
	}
}

func TestFlagFixesInvalidEnvironment(t *testing.T) {
	t.Setenv("STFTOOL_FRAME_SHIFT", "2048")

	stdout, _, err := runCmd(t, "--frame-length", "4096", "info")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if !strings.Contains(stdout, "frame shift           2048") {
		t.Fatalf("info output missing env frame shift:\n%s", stdout)
	}

	if _, _, err := runCmd(t, "info"); err == nil {
		t.Fatal("expected error for frame shift longer than the default frame length")
	}
}

func TestInvalidParameters(t *testing.T) {
	if _, _, err := runCmd(t, "--frame-length", "63", "info"); err == nil {
		t.Fatal("expected error for odd frame length")
	}
	if _, _, err := runCmd(t, "resynth", "missing.wav", "out.wav"); err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestVerboseLogging(t *testing.T) {
	_, stderr, err := runCmd(t, "-v", "info")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if !strings.Contains(stderr, "configuration resolved") || !strings.Contains(stderr, "level=DEBUG") {
		t.Fatalf("debug log missing: %q", stderr)
	}
}

func TestGenerateThenEnvelope(t *testing.T) {
	dir := t.TempDir()
	wavPath := filepath.Join(dir, "tone.wav")
	envPath := filepath.Join(dir, "env.csv")

	if _, stderr, err := runCmd(t, "generate", "--kind", "harmonic", "--freq", "250", "--seconds", "0.25", "--amplitude", "0.9", wavPath); err != nil {
		t.Fatalf("generate error: %v (stderr %s)", err, stderr)
	}
	tone := readOutput(t, wavPath)
	if len(tone) != 4000 {
		t.Fatalf("samples=%d want=4000", len(tone))
	}
	peak := 0.0
	for _, x := range tone {
		peak = max(peak, x, -x)
	}
	if peak < 0.89 || peak > 0.91 {
		t.Fatalf("peak=%v want~0.9", peak)
	}

	if _, stderr, err := runCmd(t, "--frame-length", "512", "--frame-shift", "128", "--order", "16",
		"envelope", "--frame", "10", wavPath, envPath); err != nil {
		t.Fatalf("envelope error: %v (stderr %s)", err, stderr)
	}
	if records := readCSV(t, envPath); len(records) != 513 {
		t.Fatalf("rows=%d want=513", len(records))
	}
}

func TestGenerateErrors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x.wav")
	if _, _, err := runCmd(t, "generate", "--kind", "square", out); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if _, _, err := runCmd(t, "generate", "--seconds", "0", out); err == nil {
		t.Fatal("expected error for zero duration")
	}
}
