// Package rewrite applies the pattern-anchored call-site rewrites that
// let a host runtime intercept resource and DOM path resolution inside
// the generated scripts. Every rewrite is an idempotent detector:
// pattern absence means the buffer is left alone, never an error, so
// repeated runs and pre-patched inputs are safe.
package rewrite

import (
	"regexp"
	"strings"

	"github.com/edge-suite/edgebuild/pkg/errors"
	"github.com/edge-suite/edgebuild/pkg/logging"
	"github.com/edge-suite/edgebuild/pkg/types"
)

var (
	// registerRe detects the composition registration call. The optional
	// fifth argument distinguishes the two authoring tool versions.
	registerRe = regexp.MustCompile(`Edge\.registerCompositionDefn\s*\(\s*compId\s*,\s*([\w$]+)\s*,\s*([\w$]+)\s*,\s*([\w$]+)(\s*,\s*[\w$]+)?\s*\)`)

	// loadResourcesRe detects the preloader's resource loader call
	loadResourcesRe = regexp.MustCompile(`(^|[^\w.$])loadResources\s*\(\s*([\w$]+)\s*,\s*([\w$]+)\s*\)`)

	// okToLaunchRe detects the preloader's launch gate call
	okToLaunchRe = regexp.MustCompile(`(^|[^\w.$])okToLaunchComposition\s*\(\s*([\w$]+)\s*\)`)
)

// injectMarker guards the wrapper injection against repeated runs
const injectMarker = "EdgeSuite.injectDOM"

// Entry rewrites the registration call of the entry script so the host
// can wrap it: the hook receives all original arguments plus the
// original registration function as final argument. Returns whether
// the pattern matched (and the file was written).
func Entry(fsys types.FS, comp *types.Composition) (bool, error) {
	log := logging.GetLogger("rewrite")

	data, err := fsys.ReadFile(comp.EntryScript)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileRead, "failed to read entry script %s", comp.EntryScript)
	}
	src := string(data)

	rewritten := registerRe.ReplaceAllString(src,
		"EdgeSuite.registerComposition(compId, $1, $2, $3$4, Edge.registerCompositionDefn)")
	if rewritten == src {
		log.Debug().Str("script", comp.EntryScript).Msg("Registration call absent, entry script unaltered")
		return false, nil
	}

	if err := fsys.WriteFile(comp.EntryScript, []byte(rewritten), 0644); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to write entry script %s", comp.EntryScript)
	}

	log.Info().Str("script", comp.EntryScript).Msg("Entry script rewritten")
	return true, nil
}

// Preloader applies the three anchored preloader rewrites to one
// buffer and writes the file once: (a) the resource loader call, (b)
// the launch gate, (c) two DOM injection hooks immediately before the
// closing wrapper invocation keyed by the stage identifier. The return
// value reports whether (a) matched; (b) and (c) are attempted
// unconditionally and are no-ops when their patterns are absent.
func Preloader(fsys types.FS, comp *types.Composition) (bool, error) {
	log := logging.GetLogger("rewrite")

	data, err := fsys.ReadFile(comp.PreloaderScript)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileRead, "failed to read preloader script %s", comp.PreloaderScript)
	}
	src := string(data)

	rewritten := loadResourcesRe.ReplaceAllString(src,
		"${1}EdgeSuite.loadResources($2, $3, loadResources)")
	alteredLoader := rewritten != src

	rewritten = okToLaunchRe.ReplaceAllString(rewritten, "${1}EdgeSuite.okToLaunch($2)")

	rewritten = injectWrapperHooks(rewritten, comp.StageID)

	if rewritten == src {
		log.Debug().Str("script", comp.PreloaderScript).Msg("Preloader patterns absent, script unaltered")
		return false, nil
	}

	if err := fsys.WriteFile(comp.PreloaderScript, []byte(rewritten), 0644); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to write preloader script %s", comp.PreloaderScript)
	}

	log.Info().Str("script", comp.PreloaderScript).Bool("loader", alteredLoader).Msg("Preloader script rewritten")
	return alteredLoader, nil
}

// injectWrapperHooks places the two DOM hooks before the closing
// wrapper invocation keyed by the stage identifier. The wrapper text
// itself survives the rewrite, so a marker check provides idempotence.
func injectWrapperHooks(src, stageID string) string {
	if stageID == "" || strings.Contains(src, injectMarker) {
		return src
	}

	wrapperRe := regexp.MustCompile(`\}\)\s*\(\s*"` + regexp.QuoteMeta(stageID) + `"\s*\)`)
	return wrapperRe.ReplaceAllString(src,
		injectMarker+"(compId, aPreloadDOM);\n"+
			injectMarker+"(compId, aTransDOM);\n"+
			`})("`+stageID+`")`)
}
