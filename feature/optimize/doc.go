// Package optimize shrinks a font database for distribution.
//
// Every transform is invertible: the optimized database resolves to the same
// download URLs, sizes and weight classes as its input. Running the
// optimizer on its own output changes nothing.
//
//   - Sizes: a family whose known variant sizes all lie within 10% of their
//     mean stores the mean once as avg_file_size.
//   - Weight classes equal to the standard mapping of the weight are dropped.
//   - Previews are recompressed at the best level when that is smaller.
//   - URLs: the directory prefix shared by most variants of a family becomes
//     the family base_url and those variants keep only their file name.
package optimize
