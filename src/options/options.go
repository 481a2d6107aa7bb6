// Package options parses build-option tokens and drives the resolver.
//
// A job's options arrive as tokens like "gcc-7 cmake-3.10 tsan mpi". Each
// token maps to one resolver handler; tokens are parsed up front so an
// unknown option fails before anything is applied, and handlers run in a
// fixed phase order (msvc before icc, compilers before the analyzer and
// mpi) regardless of how the job spells its option string.
package options

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sofmeright/toolstage/src/toolchain"
)

// phases fix the application order of directives.
const (
	phaseJobs = iota
	phaseMSVC
	phaseCompiler
	phaseCMake
	phaseAnalyzer
	phaseAuxiliary
)

type directive struct {
	token string
	phase int
	apply func(r *toolchain.Resolver) error
}

// optionSpec matches one option kind. Versioned specs match
// "<prefix>-<version>"; bare specs match the name exactly.
type optionSpec struct {
	prefix string
	bare   bool
	phase  int
	apply  func(r *toolchain.Resolver, version string) error
}

// optionSpecs is ordered: longer prefixes first so
// "clang-static-analyzer-9" never parses as a clang version.
var optionSpecs = []optionSpec{
	{prefix: "build-jobs", phase: phaseJobs, apply: applyBuildJobs},
	{prefix: "clang-static-analyzer", phase: phaseAnalyzer, apply: func(r *toolchain.Resolver, v string) error {
		return r.SelectClangStaticAnalyzer(v)
	}},
	{prefix: "msvc", phase: phaseMSVC, apply: func(r *toolchain.Resolver, v string) error {
		return r.SelectMSVC(v)
	}},
	{prefix: "gcc", phase: phaseCompiler, apply: func(r *toolchain.Resolver, v string) error {
		return r.SelectGCC(v)
	}},
	{prefix: "clang", phase: phaseCompiler, apply: func(r *toolchain.Resolver, v string) error {
		return r.SelectClang(v)
	}},
	{prefix: "icc", phase: phaseCompiler, apply: func(r *toolchain.Resolver, v string) error {
		return r.SelectIntel(v)
	}},
	{prefix: "cmake", phase: phaseCMake, apply: func(r *toolchain.Resolver, v string) error {
		return r.RequestMinimumCMake(v)
	}},
	{prefix: "cuda", phase: phaseAuxiliary, apply: func(r *toolchain.Resolver, v string) error {
		r.SetCUDA(v)
		return nil
	}},
	{prefix: "amdappsdk", phase: phaseAuxiliary, apply: func(r *toolchain.Resolver, v string) error {
		r.SetAMDAppSDK(v)
		return nil
	}},
	{prefix: "phi", bare: true, phase: phaseAuxiliary, apply: func(r *toolchain.Resolver, _ string) error {
		r.SetPhi()
		return nil
	}},
	{prefix: "tsan", bare: true, phase: phaseAuxiliary, apply: func(r *toolchain.Resolver, _ string) error {
		r.SetTSAN()
		return nil
	}},
	{prefix: "atlas", bare: true, phase: phaseAuxiliary, apply: func(r *toolchain.Resolver, _ string) error {
		r.SetAtlas()
		return nil
	}},
	{prefix: "mpi", bare: true, phase: phaseAuxiliary, apply: func(r *toolchain.Resolver, _ string) error {
		return r.SetMPI()
	}},
}

func applyBuildJobs(r *toolchain.Resolver, version string) error {
	jobs, err := strconv.Atoi(version)
	if err != nil {
		return toolchain.Errorf("invalid build-jobs value %q: must be an integer", version)
	}
	return r.SetBuildJobs(jobs)
}

// Plan is a parsed, ordered sequence of option directives.
type Plan struct {
	directives []directive
}

// Parse validates option tokens and fixes their application order.
func Parse(tokens []string) (*Plan, error) {
	plan := &Plan{}
	for _, token := range tokens {
		d, err := parseToken(token)
		if err != nil {
			return nil, err
		}
		plan.directives = append(plan.directives, d)
	}
	sort.SliceStable(plan.directives, func(i, j int) bool {
		return plan.directives[i].phase < plan.directives[j].phase
	})
	return plan, nil
}

// ParseString splits a whitespace-separated option string and parses it.
func ParseString(opts string) (*Plan, error) {
	return Parse(strings.Fields(opts))
}

func parseToken(token string) (directive, error) {
	for _, spec := range optionSpecs {
		if spec.bare {
			if token == spec.prefix {
				apply := spec.apply
				return directive{token: token, phase: spec.phase, apply: func(r *toolchain.Resolver) error {
					return apply(r, "")
				}}, nil
			}
			continue
		}
		if version, ok := strings.CutPrefix(token, spec.prefix+"-"); ok && version != "" {
			apply := spec.apply
			return directive{token: token, phase: spec.phase, apply: func(r *toolchain.Resolver) error {
				return apply(r, version)
			}}, nil
		}
	}
	return directive{}, toolchain.Errorf("unknown build option %q", token)
}

// Tokens returns the parsed tokens in application order.
func (p *Plan) Tokens() []string {
	tokens := make([]string, len(p.directives))
	for i, d := range p.directives {
		tokens[i] = d.token
	}
	return tokens
}

// Apply runs every directive against the resolver. The first failing
// directive aborts and is identified in the returned error.
func (p *Plan) Apply(r *toolchain.Resolver) error {
	for _, d := range p.directives {
		if err := d.apply(r); err != nil {
			return &toolchain.ConfigurationError{Msg: "applying option " + d.token, Err: err}
		}
	}
	return nil
}
