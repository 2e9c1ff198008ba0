package execution

import (
	"math/rand"
	"runtime"

	"github.com/preflightdev/preflight/pkg/config"
)

// maxCLILengthUnix and maxCLILengthWindows bound the total argv length of a
// single batch invocation. Windows reserves headroom below its hard
// CreateProcess limit for the environment block and the interpreter's own
// bookkeeping.
const (
	maxCLILengthUnix    = 4096
	maxCLILengthWindows = 32768 - 2048
	minFilesPerBatch    = 4
)

// MaxCLILength returns the platform's argv length budget used to size file
// batches.
func MaxCLILength() int {
	if runtime.GOOS == "windows" {
		return maxCLILengthWindows
	}
	return maxCLILengthUnix
}

// shuffleSeed is fixed so batch contents are reproducible across runs and
// across machines, while still spreading expensive files evenly.
const shuffleSeed = 1542676187

// ShuffleDeterministic returns a copy of files shuffled with a fixed seed.
// Running the same file list through the same hook always produces the
// same batches, which keeps output order reproducible for tests while still
// distributing cost evenly across concurrent batches.
func ShuffleDeterministic(files []string) []string {
	shuffled := make([]string, len(files))
	copy(shuffled, files)
	r := rand.New(rand.NewSource(shuffleSeed)) //nolint:gosec // reproducibility, not security
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// PassesFilenames reports whether the hook's batches should carry filenames
// at all. docker/docker_image hooks default to false; everything else
// defaults to true unless overridden explicitly in the hook definition.
func PassesFilenames(hook config.Hook) bool {
	if hook.PassFilenames != nil {
		return *hook.PassFilenames
	}
	return hook.Language != "docker" && hook.Language != "docker_image"
}

// PartitionFiles splits files into argv-length-bounded, count-bounded
// batches for a hook's entry+args prefix, mirroring how a shell would need
// to split an overlong xargs invocation. Batches are filled in (shuffled)
// order, flushing whenever either the cumulative argv length or the
// per-batch file-count cap would be exceeded.
//
// If pass_filenames is false, the batches collapse to one empty batch
// regardless of how many files matched. If there are no files at all but
// the hook is always_run, a single empty batch is emitted so the hook still
// executes once.
func PartitionFiles(hook config.Hook, files []string, concurrency int) [][]string {
	if !PassesFilenames(hook) {
		return [][]string{{}}
	}

	if len(files) == 0 {
		if hook.AlwaysRun {
			return [][]string{{}}
		}
		return nil
	}

	if concurrency < 1 {
		concurrency = 1
	}

	fixedLen := len(hook.Entry)
	for _, a := range hook.Args {
		fixedLen += len(a) + 1
	}

	maxLen := MaxCLILength()

	maxPerBatch := len(files) / concurrency
	if len(files)%concurrency != 0 {
		maxPerBatch++
	}
	if maxPerBatch < minFilesPerBatch {
		maxPerBatch = minFilesPerBatch
	}

	shuffled := ShuffleDeterministic(files)

	var batches [][]string
	current := make([]string, 0, maxPerBatch)
	currentLen := fixedLen

	flush := func() {
		if len(current) > 0 {
			batches = append(batches, current)
			current = make([]string, 0, maxPerBatch)
			currentLen = fixedLen
		}
	}

	for _, f := range shuffled {
		addLen := len(f) + 1
		if len(current) > 0 && (currentLen+addLen > maxLen || len(current) >= maxPerBatch) {
			flush()
		}
		current = append(current, f)
		currentLen += addLen
	}
	flush()

	if len(batches) == 0 {
		batches = [][]string{{}}
	}

	return batches
}

// ResolveConcurrency computes the number of file batches allowed to run at
// once for hook: the host's available parallelism, forced down to 1 when
// the hook demands serial execution or the environment disables
// concurrency altogether.
func ResolveConcurrency(hook config.Hook, noConcurrencyEnv bool) int {
	if hook.RequireSerial || noConcurrencyEnv {
		return 1
	}
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	return n
}
