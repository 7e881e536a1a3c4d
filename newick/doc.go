/*
Package newick provides facilities for reading and writing trees in the
Newick format. The format used is roughly equivalent to the conventions
established here:
http://evolution.genetics.washington.edu/phylip/newick_doc.html.

Quoted labels ('it''s here') and bracketed comments ([like this]) are
supported. Underscores in unquoted labels are kept as-is rather than being
translated to blanks.

The terminating ';' may be omitted for the last tree in the input, so that
"(A:1,B:2)C" and "(A:1,B:2)C;" describe the same tree. A tree cut off inside
a descendant list is always an error.

Branch lengths must be non-negative finite numbers in decimal notation,
optionally signed and with an exponent ("2", "+0.5", "1.5e-3"). Hexadecimal
floats, "Inf" and "NaN" are rejected. A node without a length reports a
length of 0 from BranchLength, but the absence is remembered so that writing
the tree back out does not invent lengths.

Input must be valid UTF-8. Invalid byte sequences are reported as errors
rather than being replaced.
*/
package newick
