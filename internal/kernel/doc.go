// Package kernel provides concrete numerical functions that write themselves
// into a gen.Generator.
//
// Every kernel is emitted with the same C calling convention:
//
//	int NAME(const d** arg, d** res, int* iw, d* w);
//
// arg and res hold one pointer per input and output, each to the nonzeros of
// the corresponding sparsity pattern. A null input reads as all zeros and a
// null output is skipped. iw and w are scratch buffers sized by NAME_work.
// Functions added with gen.Generator.AddFunction also get NAME_n_in,
// NAME_n_out, NAME_sparsity_in, NAME_sparsity_out and NAME_work; the entry
// function additionally gets mex_eval and main_eval wrappers when the
// corresponding options are set.
package kernel
