package resolve

import (
	"encoding/gob"
	"fmt"
	"os"
)

func (l *Labels) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" labels.SaveGob %v", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(l); err != nil {
		return fmt.Errorf(" labels.SaveGob %v", err)
	}
	return nil
}

func LoadGobLabels(fp string) (*Labels, error) {
	var l Labels
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(&l); err != nil {
		return nil, err
	}
	return &l, nil
}
