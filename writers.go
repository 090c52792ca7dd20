package catchment

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/maseology/catchment/flowmodel"
	"github.com/maseology/catchment/pour"
	"github.com/maseology/catchment/resolve"
	"github.com/maseology/mmio"
)

// SaveLabels writes the watershed label raster as little-endian int32
// bil with an ESRI-style header; unlabeled cells carry -9999.
func SaveLabels(fp string, fm *flowmodel.FlowModel, lbl *resolve.Labels) error {
	a := fm.GD.NullInt32(-9999)
	for i, cid := range fm.Cids {
		if lbl.L[i] >= 0 {
			a[cid] = int32(lbl.L[i])
		}
	}
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, a); err != nil {
		return fmt.Errorf("SaveLabels failed: %v", err)
	}
	if err := os.WriteFile(fp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("SaveLabels failed: %v", err)
	}
	if err := fm.GD.ToHDR(mmio.RemoveExtension(fp)+".hdr", 1, 32); err != nil {
		return fmt.Errorf("SaveLabels failed: %v", err)
	}
	return nil
}

// writeSnapReport lists each pour point's snapped cell alongside the
// unresolvable points, so snap failures are never silent.
func writeSnapReport(fp string, res *Result) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf("writeSnapReport failed: %v", err)
	}
	defer f.Close()
	fmt.Fprintln(f, "name,x,y,cellid,status")
	for _, s := range res.Snapped {
		fmt.Fprintf(f, "%s,%f,%f,%d,snapped\n", s.Name, s.X, s.Y, s.Cid)
	}
	for _, e := range res.SnapErrs {
		if se, ok := e.(*pour.SnapError); ok {
			fmt.Fprintf(f, "%s,%f,%f,-1,unresolved\n", se.P.Name, se.P.X, se.P.Y)
		}
	}
	return nil
}
