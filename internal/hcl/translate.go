package hcl

import (
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/yangkit/internal/config"
)

// translate converts the decoded HCL structure into the config model.
func translate(root *fileRoot, baseDir string) (*config.Model, error) {
	model := &config.Model{AugmentTargets: root.AugmentTargets}
	for _, src := range root.Sources {
		if !filepath.IsAbs(src) {
			src = filepath.Join(baseDir, src)
		}
		model.Sources = append(model.Sources, src)
	}

	if len(root.Features) > 0 {
		model.Features = make(map[string][]string, len(root.Features))
	}
	for _, f := range root.Features {
		if _, dup := model.Features[f.Module]; dup {
			return nil, fmt.Errorf("feature block for module '%s' is defined more than once", f.Module)
		}
		enabled := f.Enabled
		if enabled == nil {
			enabled = []string{}
		}
		model.Features[f.Module] = enabled
	}

	if root.Log != nil {
		model.LogLevel = root.Log.Level
		model.LogFormat = root.Log.Format
	}
	return model, nil
}
