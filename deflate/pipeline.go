// SPDX-License-Identifier: MIT

package deflate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/leontief/estimate"
	"github.com/katalvlaran/leontief/gras"
	"github.com/katalvlaran/leontief/internal/logger"
	"github.com/katalvlaran/leontief/layout"
	"github.com/katalvlaran/leontief/matrix"
	"github.com/katalvlaran/leontief/ratio"
	"github.com/katalvlaran/leontief/sector"
)

// BaseIndex is the value of every chained index in the base year.
const BaseIndex = 100.0

// YearInput is one year of tables.
type YearInput struct {
	Year int
	// Current holds the tables at the year's own prices.
	Current estimate.Tables
	// Prior holds the same year at the previous year's prices. It is ignored for the
	// base year and required for every other year.
	Prior *estimate.Tables
}

// Pipeline runs the multi-year chained deflation for one table-size class.
type Pipeline struct {
	layout layout.Layout
	opts   options
}

// New validates l and returns a Pipeline.
func New(l layout.Layout, opts ...Option) (*Pipeline, error) {
	if err := l.Validate(); err != nil {
		return nil, deflateErrorf(opNew, err)
	}

	return &Pipeline{layout: l, opts: newOptions(opts...)}, nil
}

// Run deflates years, the first of which is the base year.
//
// Implementation:
//   - Stage 1: check the years are strictly consecutive.
//   - Stage 2: per year, build both valuations, rebase the prior-year matrices
//     (markdown + GRAS), compute deflators and chain them onto the previous index.
//   - Stage 3: double-deflate the current valuation against the chained index and
//     the aggregate index; convert every valuation to sector space.
//
// Behavior highlights:
//   - ctx is checked between years; the numerics themselves are not interruptible.
//   - The first failing year aborts the run; the partial series is discarded.
//
// Errors:
//   - ErrNoYears, ErrYearSequence, *YearError (wrapping gras.ErrNotConverged,
//     sector.ErrSingularLeontief, layout.ErrTableShape, ...), ctx.Err().
//
// Complexity:
//   - Time O(n·(k·p·(s+d) + s³)) for n years and k GRAS iterations.
func (p *Pipeline) Run(ctx context.Context, years []YearInput) (*Series, error) {
	if len(years) == 0 {
		return nil, deflateErrorf(opRun, ErrNoYears)
	}
	for i := 1; i < len(years); i++ {
		if years[i].Year != years[i-1].Year+1 {
			return nil, deflateErrorf(opRun, fmt.Errorf("%d follows %d: %w", years[i].Year, years[i-1].Year, ErrYearSequence))
		}
	}

	log := p.opts.log.Named("deflate")
	out := &Series{Years: make([]YearResult, 0, len(years)), Labels: years[0].Current.Labels}
	var prev *Indices
	for _, in := range years {
		if err := ctx.Err(); err != nil {
			return nil, deflateErrorf(opRun, err)
		}
		start := time.Now()
		yr, err := p.year(ctx, in, prev)
		if err != nil {
			log.Error(ctx, "year failed", logger.Int("year", in.Year), logger.Err(err))
			return nil, err
		}
		elapsed := time.Since(start)
		p.opts.observer.YearDone(in.Year, elapsed)
		log.Info(ctx, "year deflated",
			logger.Int("year", in.Year),
			logger.Float64("aggregate_index", yr.Index.Aggregate),
			logger.Any("iterations", yr.Iterations),
			logger.Duration("elapsed", elapsed),
		)
		out.Years = append(out.Years, *yr)
		prev = yr.Index
	}

	return out, nil
}

// year processes one year; prev is nil for the base year.
func (p *Pipeline) year(ctx context.Context, in YearInput, prev *Indices) (*YearResult, error) {
	fail := func(stage string, err error) error {
		return &YearError{Year: in.Year, Stage: stage, Err: err}
	}

	cur, prior, err := p.build(ctx, in, prev == nil)
	if err != nil {
		return nil, fail(StageBuild, err)
	}
	res := &YearResult{Year: in.Year, Current: cur, Iterations: map[string]int{}}

	if prev == nil {
		res.PriorYearObserved, res.PriorYearAdjusted = cur, cur
		if res.Index, err = baseIndex(cur); err != nil {
			return nil, fail(StageDeflators, err)
		}
	} else {
		res.PriorYearObserved = prior
		if res.PriorYearAdjusted, res.Deflators, err = p.rebase(ctx, res, cur, prior); err != nil {
			return nil, err
		}
		if res.Index, err = chain(res.Deflators, prev); err != nil {
			return nil, fail(StageDeflators, err)
		}
	}
	if res.Deflated, err = deflate(cur, res.Index); err != nil {
		return nil, fail(StageDeflators, err)
	}

	for _, v := range []*Valuation{res.Current, res.PriorYearObserved, res.PriorYearAdjusted, res.Deflated} {
		if v.Sector != nil {
			continue
		}
		if err = convert(v); err != nil {
			return nil, fail(StageConvert, err)
		}
	}

	return res, nil
}

// build produces the current and prior-year views, concurrently unless sequential.
func (p *Pipeline) build(ctx context.Context, in YearInput, base bool) (cur, prior *Valuation, err error) {
	opts := []estimate.Option{estimate.WithLogger(p.opts.log), estimate.WithObserver(p.opts.observer)}
	if base {
		cur, err = view(ctx, in.Current, p.layout, opts)
		return cur, cur, err
	}
	if in.Prior == nil {
		return nil, nil, fmt.Errorf("prior-year tables: %w", estimate.ErrMissingTable)
	}

	if p.opts.sequential {
		if cur, err = view(ctx, in.Current, p.layout, opts); err != nil {
			return nil, nil, err
		}
		if prior, err = view(ctx, *in.Prior, p.layout, opts); err != nil {
			return nil, nil, err
		}
		return cur, prior, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := view(gctx, in.Current, p.layout, opts)
		cur = v
		return err
	})
	g.Go(func() error {
		v, err := view(gctx, *in.Prior, p.layout, opts)
		prior = v
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, nil, err
	}

	return cur, prior, nil
}

// view strips one set of tables to basic prices and collects its series.
func view(ctx context.Context, t estimate.Tables, l layout.Layout, opts []estimate.Option) (*Valuation, error) {
	dec, err := estimate.BasicPrices(ctx, t, l, opts...)
	if err != nil {
		return nil, err
	}
	v := &Valuation{Consumption: dec.Basic}
	if v.Production, err = matrix.Transpose(dec.Production); err != nil {
		return nil, err
	}
	if v.SectorOutput, err = dec.SectorOutput(); err != nil {
		return nil, err
	}
	if v.ProductOutput, err = dec.ProductOutput(); err != nil {
		return nil, err
	}
	if v.Demand, err = dec.Demand(); err != nil {
		return nil, err
	}
	v.Aggregate = matrix.VecSum(v.SectorOutput)

	return v, nil
}

// rebase re-estimates the degenerate prior-year cells, balances the prior-year
// matrices back onto their margins and computes the deflators against them.
func (p *Pipeline) rebase(ctx context.Context, res *YearResult, cur, prior *Valuation) (*Valuation, *Indices, error) {
	fail := func(stage string, err error) error {
		return &YearError{Year: res.Year, Stage: stage, Err: err}
	}
	record := func(series, stage string, kind ratio.Kind, n int) {
		if n == 0 {
			return
		}
		res.Degenerate = append(res.Degenerate, Degeneracy{Series: series, Stage: stage, Kind: kind, Cells: n})
		p.opts.observer.Degenerate(series, stage, kind, n)
		if stage == DegeneracyResidual && kind == ratio.DivByZero {
			p.opts.log.Warn(ctx, "deflator divides by zero after balancing; set to 1",
				logger.Int("year", res.Year), logger.String("series", series), logger.Int("cells", n))
		}
	}

	prodAdj, err := markdown(cur.Production, prior.Production, func(i, _ int, c float64) float64 {
		return ratio.Of(c, cur.SectorOutput[i]).Or(0) * prior.SectorOutput[i]
	}, func(kind ratio.Kind, n int) { record(SeriesProduction, DegeneracyMarkdown, kind, n) })
	if err != nil {
		return nil, nil, fail(StageDeflators, err)
	}
	consAdj, err := markdown(cur.Consumption, prior.Consumption, func(_, j int, c float64) float64 {
		return ratio.Of(c, cur.Demand[j]).Or(0) * prior.Demand[j]
	}, func(kind ratio.Kind, n int) { record(SeriesConsumption, DegeneracyMarkdown, kind, n) })
	if err != nil {
		return nil, nil, fail(StageDeflators, err)
	}

	prodBal, err := p.balance(SeriesProduction, prodAdj, prior.SectorOutput, prior.ProductOutput)
	if err != nil {
		return nil, nil, fail(StageBalanceProduction, err)
	}
	res.Iterations[SeriesProduction] = prodBal.Iterations
	consRows, err := matrix.RowSums(prior.Consumption)
	if err != nil {
		return nil, nil, fail(StageBalanceConsumption, err)
	}
	consBal, err := p.balance(SeriesConsumption, consAdj, consRows, prior.Demand)
	if err != nil {
		return nil, nil, fail(StageBalanceConsumption, err)
	}
	res.Iterations[SeriesConsumption] = consBal.Iterations

	balanced := &Valuation{
		Consumption:   consBal.Matrix,
		Production:    prodBal.Matrix,
		SectorOutput:  append([]float64(nil), prior.SectorOutput...),
		ProductOutput: append([]float64(nil), prior.ProductOutput...),
		Demand:        append([]float64(nil), prior.Demand...),
		Aggregate:     prior.Aggregate,
	}

	defl := &Indices{}
	if defl.Production, err = residual(cur.Production, balanced.Production, func(kind ratio.Kind, n int) {
		record(SeriesProduction, DegeneracyResidual, kind, n)
	}); err != nil {
		return nil, nil, fail(StageDeflators, err)
	}
	if defl.Consumption, err = residual(cur.Consumption, balanced.Consumption, func(kind ratio.Kind, n int) {
		record(SeriesConsumption, DegeneracyResidual, kind, n)
	}); err != nil {
		return nil, nil, fail(StageDeflators, err)
	}
	vectors := []struct {
		series   string
		num, den []float64
		dst      *[]float64
	}{
		{SeriesSectorOutput, cur.SectorOutput, prior.SectorOutput, &defl.SectorOutput},
		{SeriesProductOutput, cur.ProductOutput, prior.ProductOutput, &defl.ProductOutput},
		{SeriesDemand, cur.Demand, prior.Demand, &defl.Demand},
	}
	for _, v := range vectors {
		rs, err := ratio.DivideVec(v.num, v.den)
		if err != nil {
			return nil, nil, fail(StageDeflators, err)
		}
		record(v.series, DegeneracyResidual, ratio.ZeroOverZero, ratio.CountVec(rs, ratio.ZeroOverZero))
		record(v.series, DegeneracyResidual, ratio.DivByZero, ratio.CountVec(rs, ratio.DivByZero))
		*v.dst = ratio.ResolveVec(rs, 1, 1)
	}
	agg := ratio.Of(cur.Aggregate, prior.Aggregate)
	if agg.Degenerate() {
		record(SeriesAggregate, DegeneracyResidual, agg.Kind, 1)
	}
	defl.Aggregate = agg.Resolve(1, 1)

	return balanced, defl, nil
}

func (p *Pipeline) balance(series string, m *matrix.Dense, rows, cols []float64) (*gras.Result, error) {
	res, err := gras.Balance(m, rows, cols, p.opts.balance...)
	if err != nil {
		if errors.Is(err, gras.ErrNotConverged) {
			p.opts.observer.NotConverged(series)
		}
		return nil, err
	}
	p.opts.observer.Balanced(series, res.Iterations)

	return res, nil
}

// markdown copies prior and replaces every cell whose deflator cur/prior is x/0 or
// exactly 0 with estimate(i, j, cur[i,j]). 0/0 cells keep the prior value.
func markdown(cur, prior *matrix.Dense, estimate func(i, j int, c float64) float64, count func(ratio.Kind, int)) (*matrix.Dense, error) {
	g, err := ratio.Divide(cur, prior)
	if err != nil {
		return nil, err
	}
	count(ratio.ZeroOverZero, g.Count(ratio.ZeroOverZero))
	count(ratio.DivByZero, g.Count(ratio.DivByZero))

	out, err := g.Map(func(i, j int, r ratio.Ratio) float64 {
		c, _ := cur.At(i, j)
		if r.Kind == ratio.DivByZero || (r.Kind == ratio.Defined && r.Value == 0) {
			return estimate(i, j, c)
		}
		v, _ := prior.At(i, j)
		return v
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// residual divides cur by the balanced prior matrix; every degenerate cell becomes 1.
func residual(cur, balanced *matrix.Dense, count func(ratio.Kind, int)) (*matrix.Dense, error) {
	g, err := ratio.Divide(cur, balanced)
	if err != nil {
		return nil, err
	}
	count(ratio.ZeroOverZero, g.Count(ratio.ZeroOverZero))
	count(ratio.DivByZero, g.Count(ratio.DivByZero))

	return g.Resolve(1, 1)
}

// baseIndex is BaseIndex for every cell of every series of v.
func baseIndex(v *Valuation) (*Indices, error) {
	fill := func(m *matrix.Dense) (*matrix.Dense, error) {
		out := m.Copy()
		if err := out.Apply(func(int, int, float64) float64 { return BaseIndex }); err != nil {
			return nil, err
		}
		return out, nil
	}
	idx := &Indices{Aggregate: BaseIndex}
	var err error
	if idx.Consumption, err = fill(v.Consumption); err != nil {
		return nil, err
	}
	if idx.Production, err = fill(v.Production); err != nil {
		return nil, err
	}
	idx.SectorOutput = matrix.VecScale(matrix.Ones(len(v.SectorOutput)), BaseIndex)
	idx.ProductOutput = matrix.VecScale(matrix.Ones(len(v.ProductOutput)), BaseIndex)
	idx.Demand = matrix.VecScale(matrix.Ones(len(v.Demand)), BaseIndex)

	return idx, nil
}

// chain returns deflator ⊙ prev for every series.
func chain(d, prev *Indices) (*Indices, error) {
	idx := &Indices{Aggregate: d.Aggregate * prev.Aggregate}
	var err error
	if idx.Consumption, err = matrix.Hadamard(d.Consumption, prev.Consumption); err != nil {
		return nil, err
	}
	if idx.Production, err = matrix.Hadamard(d.Production, prev.Production); err != nil {
		return nil, err
	}
	if idx.SectorOutput, err = vecMul(d.SectorOutput, prev.SectorOutput); err != nil {
		return nil, err
	}
	if idx.ProductOutput, err = vecMul(d.ProductOutput, prev.ProductOutput); err != nil {
		return nil, err
	}
	if idx.Demand, err = vecMul(d.Demand, prev.Demand); err != nil {
		return nil, err
	}

	return idx, nil
}

func vecMul(x, y []float64) ([]float64, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("len %d != %d: %w", len(x), len(y), matrix.ErrDimensionMismatch)
	}
	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[i] * y[i]
	}

	return out, nil
}

// deflate double-deflates v: each cell goes to base-year prices through its own
// index, then is re-expressed against the aggregate index. A zero index gives 0.
func deflate(v *Valuation, idx *Indices) (*Valuation, error) {
	agg := idx.Aggregate
	cell := func(c, ix float64) float64 {
		d := ratio.Of(c, ix).Or(0) * BaseIndex
		return ratio.Of(d*ix, agg).Or(0)
	}
	cells := func(m, ix *matrix.Dense) (*matrix.Dense, error) {
		out := m.Copy()
		err := out.Apply(func(i, j int, c float64) float64 {
			x, _ := ix.At(i, j)
			return cell(c, x)
		})
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	vec := func(x, ix []float64) []float64 {
		out := make([]float64, len(x))
		for i := range x {
			out[i] = cell(x[i], ix[i])
		}
		return out
	}

	out := &Valuation{
		SectorOutput:  vec(v.SectorOutput, idx.SectorOutput),
		ProductOutput: vec(v.ProductOutput, idx.ProductOutput),
		Demand:        vec(v.Demand, idx.Demand),
		Aggregate:     ratio.Of(v.Aggregate, agg).Or(0) * BaseIndex,
	}
	var err error
	if out.Consumption, err = cells(v.Consumption, idx.Consumption); err != nil {
		return nil, err
	}
	if out.Production, err = cells(v.Production, idx.Production); err != nil {
		return nil, err
	}

	return out, nil
}

// convert fills v.Sector from its matrices.
func convert(v *Valuation) error {
	mk, err := matrix.Transpose(v.Production)
	if err != nil {
		return err
	}
	v.Sector, err = sector.Convert(sector.Input{
		Production:    mk,
		Consumption:   v.Consumption,
		Output:        v.SectorOutput,
		ProductTotals: v.ProductOutput,
	})

	return err
}
