package biasdetect

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/fholstege/unsupervised-bias-detection/codec"
)

const (
	// snapshotMagic identifies snapshot files (ASCII: "BAHC")
	snapshotMagic = 0x42414843
	// snapshotVersion is the current snapshot format version (v1.0.0)
	snapshotVersion = 0x00010000
)

var (
	ErrInvalidMagic    = errors.New("invalid magic number")
	ErrInvalidVersion  = errors.New("unsupported snapshot version")
	ErrUnknownCodec    = errors.New("unknown snapshot codec")
	ErrCorruptSnapshot = errors.New("corrupt snapshot state")
)

// snapshotState is the codec payload of a snapshot. It carries everything
// Predict needs plus the fit configuration, so a loaded engine behaves like
// the one that was saved.
type snapshotState struct {
	NIter          int         `json:"n_iter"`
	MinClusterSize int         `json:"min_cluster_size"`
	Dim            int         `json:"dim"`
	NClusters      int         `json:"n_clusters"`
	Labels         []int       `json:"labels"`
	Scores         []float64   `json:"scores"`
	Centroids      [][]float64 `json:"centroids"`
}

// validate rejects payloads that could not have been written from a fitted
// engine before any of them reach Predict.
func (st *snapshotState) validate() error {
	if st.Dim < 1 || st.NClusters < 1 ||
		len(st.Scores) != st.NClusters || len(st.Centroids) != st.NClusters {
		return fmt.Errorf("%w: %d clusters, %d scores, %d centroids, dim %d",
			ErrCorruptSnapshot, st.NClusters, len(st.Scores), len(st.Centroids), st.Dim)
	}
	for k, centroid := range st.Centroids {
		if len(centroid) != st.Dim {
			return fmt.Errorf("%w: centroid %d has %d features, want %d",
				ErrCorruptSnapshot, k, len(centroid), st.Dim)
		}
	}
	for i, l := range st.Labels {
		if l < 0 || l >= st.NClusters {
			return fmt.Errorf("%w: label %d at row %d outside [0, %d)",
				ErrCorruptSnapshot, l, i, st.NClusters)
		}
	}
	return nil
}

// SaveToWriter writes a snapshot of the fitted state to w.
//
// Layout: magic, version, codec name, then the zstd-compressed codec
// payload. Snapshots are self-describing; files written with a non-default
// codec load without extra configuration.
func (c *HierarchicalClustering) SaveToWriter(w io.Writer) error {
	cdc := c.codec
	if cdc == nil {
		cdc = codec.Default
	}

	err := c.writeSnapshot(w, cdc)
	c.logger.LogSnapshot(context.Background(), cdc.Name(), err)
	return err
}

func (c *HierarchicalClustering) writeSnapshot(w io.Writer, cdc codec.Codec) error {
	if !c.fitted {
		return ErrNotFitted
	}

	if err := writeSnapshotHeader(w, cdc.Name()); err != nil {
		return err
	}

	payload, err := cdc.Marshal(snapshotState{
		NIter:          c.nIter,
		MinClusterSize: c.minClusterSize,
		Dim:            c.dim,
		NClusters:      c.nClusters,
		Labels:         c.labels,
		Scores:         c.scores,
		Centroids:      c.centroids,
	})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if _, err := enc.Write(payload); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// LoadFromReader reconstructs a fitted engine from a snapshot written by
// SaveToWriter. The loaded engine answers Predict immediately; options
// apply as in New.
func LoadFromReader(r io.Reader, optFns ...Option) (*HierarchicalClustering, error) {
	o := applyOptions(optFns)

	c, codecName, err := readSnapshot(r, optFns)
	o.logger.LogSnapshot(context.Background(), codecName, err)
	return c, err
}

func readSnapshot(r io.Reader, optFns []Option) (*HierarchicalClustering, string, error) {
	codecName, err := readSnapshotHeader(r)
	if err != nil {
		return nil, codecName, err
	}
	cdc, ok := codec.ByName(codecName)
	if !ok {
		return nil, codecName, fmt.Errorf("%w: %q", ErrUnknownCodec, codecName)
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, codecName, err
	}
	defer dec.Close()

	payload, err := io.ReadAll(dec)
	if err != nil {
		return nil, codecName, err
	}

	var st snapshotState
	if err := cdc.Unmarshal(payload, &st); err != nil {
		return nil, codecName, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := st.validate(); err != nil {
		return nil, codecName, err
	}

	c, err := New(st.NIter, st.MinClusterSize, optFns...)
	if err != nil {
		return nil, codecName, err
	}
	c.dim = st.Dim
	c.nClusters = st.NClusters
	c.labels = st.Labels
	c.scores = st.Scores
	c.centroids = st.Centroids
	c.fitted = true

	return c, codecName, nil
}

func writeSnapshotHeader(w io.Writer, codecName string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(snapshotMagic)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(snapshotVersion)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(codecName))); err != nil {
		return err
	}
	_, err := w.Write([]byte(codecName))
	return err
}

func readSnapshotHeader(r io.Reader) (string, error) {
	var magic, version uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return "", err
	}
	if magic != snapshotMagic {
		return "", ErrInvalidMagic
	}
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return "", err
	}
	if version != snapshotVersion {
		return "", ErrInvalidVersion
	}

	var nameLen uint16
	if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
		return "", err
	}
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return "", err
	}
	return string(name), nil
}
