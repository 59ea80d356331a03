package hub

import "strings"

// LargestOverThreshold picks, among files whose path ends in suffix and whose
// size strictly exceeds threshold, the one with the largest size. On equal
// sizes the lexicographically smaller path wins, so the result does not
// depend on listing order. The second return is false when nothing qualifies;
// callers decide whether that is fatal.
func LargestOverThreshold(files []RepoFile, suffix string, threshold int64) (string, bool) {
	var best RepoFile
	found := false
	for _, file := range files {
		if !strings.HasSuffix(file.Path, suffix) || file.Size <= threshold {
			continue
		}
		if !found || file.Size > best.Size || (file.Size == best.Size && file.Path < best.Path) {
			best = file
			found = true
		}
	}
	return best.Path, found
}
