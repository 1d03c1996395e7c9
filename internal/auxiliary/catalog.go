package auxiliary

// C sources of the auxiliary routines.
//
// Every routine is written against the scalar macro `d`, which the generated
// document defines before the auxiliary section. Sparsity arguments use the
// compressed layout nrow, ncol, colind[ncol+1], row[nnz].

// routine describes how one tag is emitted.
type routine struct {
	// text is the fixed C source. Empty when gen is set.
	text string
	// gen produces the source programmatically.
	gen func() string
	// requires lists routines called from text, emitted first.
	requires []Tag
	// includes lists system headers the text needs.
	includes []string
}

var catalog = map[Tag]routine{
	TagCopyN:    {text: copyNSrc},
	TagSwap:     {text: swapSrc},
	TagScal:     {text: scalSrc},
	TagAxpy:     {text: axpySrc},
	TagDot:      {text: dotSrc},
	TagAsum:     {text: asumSrc, includes: []string{"math.h"}},
	TagIamax:    {text: iamaxSrc, includes: []string{"math.h"}},
	TagNrm2:     {text: nrm2Src, includes: []string{"math.h"}},
	TagFillN:    {text: fillNSrc},
	TagMMSparse: {text: mmSparseSrc},
	TagSq:       {gen: sqSrc},
	TagSign:     {gen: signSrc},
	TagProject:  {text: projectSrc},
	TagTrans:    {text: transSrc},
	TagToMex:    {text: toMexSrc, includes: []string{"mex.h"}},
	TagFromMex:  {text: fromMexSrc, requires: []Tag{TagFillN}, includes: []string{"mex.h"}},
}

const copyNSrc = `void ng_copy_n(const d* x, int n, d* y) {
  int i;
  if (y) {
    if (x) {
      for (i=0; i<n; ++i) *y++ = *x++;
    } else {
      for (i=0; i<n; ++i) *y++ = 0;
    }
  }
}
`

const swapSrc = `void ng_swap(int n, d* x, int inc_x, d* y, int inc_y) {
  d t;
  int i;
  for (i=0; i<n; ++i) {
    t = *x;
    *x = *y;
    *y = t;
    x += inc_x;
    y += inc_y;
  }
}
`

const scalSrc = `void ng_scal(int n, d alpha, d* x, int inc_x) {
  int i;
  for (i=0; i<n; ++i) {
    *x *= alpha;
    x += inc_x;
  }
}
`

const axpySrc = `void ng_axpy(int n, d alpha, const d* x, int inc_x, d* y, int inc_y) {
  int i;
  for (i=0; i<n; ++i) {
    *y += alpha * *x;
    x += inc_x;
    y += inc_y;
  }
}
`

const dotSrc = `d ng_dot(int n, const d* x, int inc_x, const d* y, int inc_y) {
  d r = 0;
  int i;
  for (i=0; i<n; ++i) {
    r += *x * *y;
    x += inc_x;
    y += inc_y;
  }
  return r;
}
`

const asumSrc = `d ng_asum(int n, const d* x, int inc_x) {
  d r = 0;
  int i;
  for (i=0; i<n; ++i) {
    r += fabs(*x);
    x += inc_x;
  }
  return r;
}
`

const iamaxSrc = `int ng_iamax(int n, const d* x, int inc_x) {
  d t, largest_value = -1;
  int i, largest_index = -1;
  for (i=0; i<n; ++i) {
    t = fabs(*x);
    x += inc_x;
    if (t>largest_value) {
      largest_value = t;
      largest_index = i;
    }
  }
  return largest_index;
}
`

const nrm2Src = `d ng_nrm2(int n, const d* x, int inc_x) {
  d r = 0;
  int i;
  for (i=0; i<n; ++i) {
    r += *x * *x;
    x += inc_x;
  }
  return sqrt(r);
}
`

const fillNSrc = `void ng_fill_n(d* x, int n, d alpha) {
  int i;
  if (x) {
    for (i=0; i<n; ++i) *x++ = alpha;
  }
}
`

// z += x*y, w holds one dense column of z.
const mmSparseSrc = `void ng_mm_sparse(const d* x, const int* sp_x, const d* y, const int* sp_y,
                  d* z, const int* sp_z, d* w) {
  int ncol_x = sp_x[1], ncol_y = sp_y[1], ncol_z = sp_z[1];
  const int *colind_x = sp_x+2, *row_x = sp_x+3+ncol_x;
  const int *colind_y = sp_y+2, *row_y = sp_y+3+ncol_y;
  const int *colind_z = sp_z+2, *row_z = sp_z+3+ncol_z;
  int cc, kk, kk1, rr;
  for (cc=0; cc<ncol_y; ++cc) {
    for (kk=colind_z[cc]; kk<colind_z[cc+1]; ++kk) w[row_z[kk]] = z[kk];
    for (kk=colind_y[cc]; kk<colind_y[cc+1]; ++kk) {
      rr = row_y[kk];
      for (kk1=colind_x[rr]; kk1<colind_x[rr+1]; ++kk1) {
        w[row_x[kk1]] += x[kk1]*y[kk];
      }
    }
    for (kk=colind_z[cc]; kk<colind_z[cc+1]; ++kk) z[kk] = w[row_z[kk]];
  }
}
`

// y gets the entries of x that fit the pattern of y, zero elsewhere.
const projectSrc = `void ng_project(const d* x, const int* sp_x, d* y, const int* sp_y, d* w) {
  int ncol_x = sp_x[1], ncol_y = sp_y[1];
  const int *colind_x = sp_x+2, *row_x = sp_x+3+ncol_x;
  const int *colind_y = sp_y+2, *row_y = sp_y+3+ncol_y;
  int i, el;
  for (i=0; i<ncol_x; ++i) {
    for (el=colind_y[i]; el<colind_y[i+1]; ++el) w[row_y[el]] = 0;
    for (el=colind_x[i]; el<colind_x[i+1]; ++el) w[row_x[el]] = x[el];
    for (el=colind_y[i]; el<colind_y[i+1]; ++el) y[el] = w[row_y[el]];
  }
}
`

const transSrc = `void ng_trans(const d* x, const int* sp_x, d* y, const int* sp_y, int* tmp) {
  int ncol_x = sp_x[1], ncol_y = sp_y[1];
  int nnz_x = sp_x[2+ncol_x];
  const int *row_x = sp_x+3+ncol_x, *colind_y = sp_y+2;
  int k;
  for (k=0; k<ncol_y; ++k) tmp[k] = colind_y[k];
  for (k=0; k<nnz_x; ++k) y[tmp[row_x[k]]++] = x[k];
}
`

const toMexSrc = `mxArray* ng_to_mex(const int* sp, d** x) {
  int nrow = *sp++, ncol = *sp++, nnz = sp[ncol];
  mxArray* p = mxCreateSparse(nrow, ncol, nnz, mxREAL);
  int i;
  mwIndex* j;
  for (i=0, j=mxGetJc(p); i<=ncol; ++i) *j++ = *sp++;
  for (i=0, j=mxGetIr(p); i<nnz; ++i) *j++ = *sp++;
  if (x) *x = (d*)mxGetData(p);
  return p;
}
`

const fromMexSrc = `d* ng_from_mex(const mxArray *p, d* y, const int* sp, d* w) {
  int nrow, ncol, nnz, is_sparse, tr, r, c, k;
  const int *colind, *row;
  size_t p_nrow, p_ncol;
  const double* p_data;
  mwIndex *Jc, *Ir;
  if (!mxIsDouble(p) || mxIsComplex(p) || mxGetNumberOfDimensions(p)!=2)
    mexErrMsgIdAndTxt("numgen:RuntimeError", "\"ng_from_mex\" failed: "
                      "Not a two-dimensional real matrix of double precision.");
  nrow = *sp++;
  ncol = *sp++;
  nnz = sp[ncol];
  colind = sp;
  row = sp+ncol+1;
  p_nrow = mxGetM(p);
  p_ncol = mxGetN(p);
  p_data = (const double*)mxGetData(p);
  is_sparse = mxIsSparse(p);
  Jc = is_sparse ? mxGetJc(p) : 0;
  Ir = is_sparse ? mxGetIr(p) : 0;
  if (p_nrow==1 && p_ncol==1) {
    ng_fill_n(y, nnz, is_sparse && Jc[1]==0 ? 0 : *p_data);
  } else {
    tr = 0;
    if (nrow!=p_nrow || ncol!=p_ncol) {
      tr = nrow==p_ncol && ncol==p_nrow && (nrow==1 || ncol==1);
      if (!tr) mexErrMsgIdAndTxt("numgen:RuntimeError", "\"ng_from_mex\" failed: "
                                 "Dimension mismatch.");
    }
    if (is_sparse) {
      if (tr) {
        for (c=0; c<ncol; ++c)
          for (k=colind[c]; k<colind[c+1]; ++k) w[row[k]+c*nrow] = 0;
        for (c=0; c<p_ncol; ++c)
          for (k=Jc[c]; k<Jc[c+1]; ++k) w[c+Ir[k]*p_ncol] = p_data[k];
        for (c=0; c<ncol; ++c)
          for (k=colind[c]; k<colind[c+1]; ++k) y[k] = w[row[k]+c*nrow];
      } else {
        for (c=0; c<ncol; ++c) {
          for (k=colind[c]; k<colind[c+1]; ++k) w[row[k]] = 0;
          for (k=Jc[c]; k<Jc[c+1]; ++k) w[Ir[k]] = p_data[k];
          for (k=colind[c]; k<colind[c+1]; ++k) y[k] = w[row[k]];
        }
      }
    } else {
      for (c=0; c<ncol; ++c) {
        for (k=colind[c]; k<colind[c+1]; ++k) {
          r = row[k];
          y[k] = p_data[r+c*nrow];
        }
      }
    }
  }
  return y;
}
`

func sqSrc() string {
	return macroRoutine(TagSq, "x*x")
}

func signSrc() string {
	return macroRoutine(TagSign, "x<0 ? -1 : x>0 ? 1 : x")
}

// macroRoutine renders a one-line scalar function of x plus a short macro
// alias named after the tag.
func macroRoutine(t Tag, expr string) string {
	name := t.String()

	return "d " + t.Routine() + "(d x) { return " + expr + "; }\n" +
		"#define " + name + "(x) " + t.Routine() + "(x)\n"
}
