// Package snapshot writes economy snapshots as zstd-compressed JSON: one
// header line followed by the snapshot body.
package snapshot

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/mars-sim/mars-sim-sub053/internal/application/economy"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

// Version is the current snapshot format
const Version = 1

// ErrUnsupportedVersion is returned for snapshots written by a newer format
var ErrUnsupportedVersion = errors.New("unsupported snapshot version")

// Header summarizes a snapshot and can be read without decoding the body
type Header struct {
	Version     int            `json:"version"`
	At          shared.SimTime `json:"at"`
	Settlements []string       `json:"settlements"`
}

// Encode writes snap to w
func Encode(w io.Writer, snap economy.Snapshot) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}

	bw := bufio.NewWriterSize(enc, 64*1024)

	header := Header{Version: Version, At: snap.At}
	for _, l := range snap.Ledgers {
		header.Settlements = append(header.Settlements, l.SettlementID)
	}
	hb, err := json.Marshal(header)
	if err != nil {
		return err
	}
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	if err := json.NewEncoder(bw).Encode(&snap); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return err
	}
	return enc.Close()
}

// Decode reads a snapshot written by Encode
func Decode(r io.Reader) (Header, economy.Snapshot, error) {
	var (
		header Header
		snap   economy.Snapshot
	)

	dec, err := zstd.NewReader(r)
	if err != nil {
		return header, snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return header, snap, fmt.Errorf("read header: %w", err)
	}
	if err := json.Unmarshal(line, &header); err != nil {
		return header, snap, fmt.Errorf("decode header: %w", err)
	}
	if header.Version > Version {
		return header, snap, fmt.Errorf("%w: %d", ErrUnsupportedVersion, header.Version)
	}

	if err := json.NewDecoder(br).Decode(&snap); err != nil {
		return header, snap, fmt.Errorf("json decode: %w", err)
	}
	return header, snap, nil
}

// Write stores snap at path, creating parent directories
func Write(path string, snap economy.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := Encode(f, snap); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read loads the snapshot stored at path
func Read(path string) (economy.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return economy.Snapshot{}, err
	}
	defer f.Close()

	_, snap, err := Decode(f)
	return snap, err
}

// ReadHeader returns only the header of the snapshot stored at path
func ReadHeader(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return Header{}, err
	}
	defer dec.Close()

	line, err := bufio.NewReader(dec).ReadBytes('\n')
	if err != nil {
		return Header{}, fmt.Errorf("read header: %w", err)
	}
	var header Header
	if err := json.Unmarshal(line, &header); err != nil {
		return Header{}, fmt.Errorf("decode header: %w", err)
	}
	return header, nil
}
