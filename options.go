package fontops

import "github.com/gogpu/fontops/sfnt"

// Option configures a Font when it is opened.
//
// Example:
//
//	f, err := fontops.Open(data, fontops.WithInstancer("native"))
type Option func(*fontConfig)

type fontConfig struct {
	instancer string
	path      string
}

func defaultFontConfig() fontConfig {
	return fontConfig{instancer: sfnt.InstancerAuto}
}

// WithInstancer selects the registered sfnt instancer used by ToSliced,
// ToStatic and SaveVariableInstances. The default is "auto".
func WithInstancer(name string) Option {
	return func(c *fontConfig) {
		c.instancer = name
	}
}

// WithPath records the file path of a font opened from memory, so Save
// without a path argument writes back to it.
func WithPath(path string) Option {
	return func(c *fontConfig) {
		c.path = path
	}
}

// InstanceOption configures ToSliced and ToStatic.
type InstanceOption func(*instanceConfig)

type instanceConfig struct {
	overlap          sfnt.OverlapMode
	optimize         bool
	updateFontNames  bool
	updateNames      bool
	updateStyleFlags bool
	styleName        string
}

// defaultSliceConfig keeps overlaps: a sliced font is still variable and
// merging contours would break interpolation.
func defaultSliceConfig() instanceConfig {
	return instanceConfig{
		overlap:  sfnt.OverlapKeepAndSetFlags,
		optimize: true,
	}
}

func defaultStaticConfig() instanceConfig {
	return instanceConfig{
		overlap:          sfnt.OverlapRemove,
		optimize:         true,
		updateNames:      true,
		updateStyleFlags: true,
	}
}

// WithOverlap sets how overlapping contours are handled.
func WithOverlap(m sfnt.OverlapMode) InstanceOption {
	return func(c *instanceConfig) {
		c.overlap = m
	}
}

// WithOptimize toggles the instancer's delta optimization. Default true.
func WithOptimize(v bool) InstanceOption {
	return func(c *instanceConfig) {
		c.optimize = v
	}
}

// WithUpdateFontNames lets the instancer rewrite the name table from STAT.
// Default false.
func WithUpdateFontNames(v bool) InstanceOption {
	return func(c *instanceConfig) {
		c.updateFontNames = v
	}
}

// WithUpdateNames controls whether ToStatic renames the font after the
// closest named instance. Default true.
func WithUpdateNames(v bool) InstanceOption {
	return func(c *instanceConfig) {
		c.updateNames = v
	}
}

// WithUpdateStyleFlags controls whether ToStatic updates the style bits.
// Default true.
func WithUpdateStyleFlags(v bool) InstanceOption {
	return func(c *instanceConfig) {
		c.updateStyleFlags = v
	}
}

// WithStyleName makes ToStatic pin at the named instance with this style
// name instead of explicit coordinates. Matching ignores case, spacing and
// diacritics.
func WithStyleName(name string) InstanceOption {
	return func(c *instanceConfig) {
		c.styleName = name
	}
}

// ExportOption configures SaveVariableInstances.
type ExportOption func(*exportConfig)

type exportConfig struct {
	formats   []sfnt.Format
	workers   int
	overwrite bool
	instance  []InstanceOption
}

func defaultExportConfig() exportConfig {
	return exportConfig{
		formats:   []sfnt.Format{sfnt.FormatWOFF, sfnt.FormatWOFF2},
		overwrite: true,
	}
}

// WithFormats sets the extra formats written for every instance, on top of
// the source format. The default is WOFF and WOFF2.
func WithFormats(formats ...sfnt.Format) ExportOption {
	return func(c *exportConfig) {
		c.formats = formats
	}
}

// WithWorkers sets the number of instances built in parallel.
// Zero or less uses GOMAXPROCS.
func WithWorkers(n int) ExportOption {
	return func(c *exportConfig) {
		c.workers = n
	}
}

// WithOverwrite controls whether existing files are replaced. Default true.
func WithOverwrite(v bool) ExportOption {
	return func(c *exportConfig) {
		c.overwrite = v
	}
}

// WithInstanceOptions passes options to the ToStatic call of every
// instance.
func WithInstanceOptions(opts ...InstanceOption) ExportOption {
	return func(c *exportConfig) {
		c.instance = append(c.instance, opts...)
	}
}
