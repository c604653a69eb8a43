package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
)

// LoadMode controls how errors are handled during document loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// Error code constants shared with the CLI.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeBadSchema   = "E007" // Schema declaration invalid
)

// LoadError represents an error that occurred during document loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadResult contains the outcome of loading schema documents.
type LoadResult struct {
	Schemas   []Schema
	CUEValue  cue.Value // The unified CUE value for additional processing
	FileCount int       // Number of CUE files found
}

// Load loads and compiles the CUE schema documents in a directory.
// All files unify into a single CUE value before compilation, so
// declarations may be split across files. In LoadModeFailFast the first
// error returns immediately; in LoadModeCollectAll every schema is
// attempted and all errors are reported.
func Load(dir string, mode LoadMode) (*LoadResult, []error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("schema directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing schema directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	result := &LoadResult{
		CUEValue:  value,
		FileCount: len(cueFiles),
	}

	var errs []error
	schemasVal := value.LookupPath(cue.ParsePath("schemas"))
	if !schemasVal.Exists() {
		errs = append(errs, &LoadError{Code: ErrCodeBadSchema, Message: `no top-level "schemas" struct found`, Pos: value.Pos()})
		return result, errs
	}

	iter, iterErr := schemasVal.Fields()
	if iterErr != nil {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating schemas: %v", iterErr)})
		return result, errs
	}
	for iter.Next() {
		schema, compileErr := compileSchema(iter.Label(), iter.Value())
		if compileErr != nil {
			errs = append(errs, convertCompileError(compileErr, "schemas."+iter.Label()))
			if mode == LoadModeFailFast {
				return result, errs
			}
			continue
		}
		result.Schemas = append(result.Schemas, *schema)
	}

	if len(result.Schemas) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeBadSchema, Message: "no schemas declared"})
	}

	return result, errs
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func convertCompileError(err error, context string) *LoadError {
	var compileErr *CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    ErrCodeBadSchema,
			Message: compileErr.Message,
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeGeneric,
		Message: fmt.Sprintf("%s: %v", context, err),
	}
}
