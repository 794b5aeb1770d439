package hcl

// fileRoot is the top-level layout of a configuration file.
type fileRoot struct {
	Sources        []string        `hcl:"sources,optional"`
	AugmentTargets []string        `hcl:"augment_targets,optional"`
	Features       []*featureBlock `hcl:"feature,block"`
	Log            *logBlock       `hcl:"log,block"`
}

// featureBlock lists the enabled features of one module.
type featureBlock struct {
	Module  string   `hcl:"module,label"`
	Enabled []string `hcl:"enabled"`
}

type logBlock struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}
