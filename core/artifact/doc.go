// Package artifact manages the files a pipeline run produces.
//
// A Workspace is a directory on an afero filesystem. It knows the names of every
// output artifact, writes them atomically, encodes JSON in the compact or
// indented form each artifact uses, compresses the distribution copy of the
// database, and computes the SHA-256 checksums published next to it.
//
// # Usage
//
//	ws := artifact.NewWorkspace(afero.NewOsFs(), cfg.WorkDir)
//	if err := ws.WriteJSON(artifact.FamiliesIndex, idx, artifact.Compact); err != nil {
//	    return err
//	}
//	sums, err := ws.WriteChecksums(artifact.ChecksummedFiles)
package artifact
