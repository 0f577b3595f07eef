package illustra

import (
	"strings"
	"testing"

	"github.com/tsawler/illustra/policy"
	"github.com/tsawler/illustra/table"
)

// Synthetic document fixtures. Layouts mirror the standard product
// revisions: a small first-page info table, an 8-column surrender-value
// table with compound rows, a 10-column death-benefit table and a 10-column
// withdrawal-scenario table.

func infoFixture() *table.RawTable {
	return &table.RawTable{
		Page: 1,
		Rows: [][]string{
			{"张三", "40", "M"},
			{"年缴保费 US$1,200", "5", "-"},
		},
	}
}

func surrenderFixture() *table.RawTable {
	return &table.RawTable{
		Page: 2,
		Rows: [][]string{
			{
				"保单年度 Policy Year", "年龄 Age", "累积保费 Total Premiums Paid",
				"保证现金价值 (A)", "复归红利 (B)", "终期红利 (C)", "特别红利 #",
				"退保总额 (E)",
			},
			{
				"1\n2\n3", "41\n42\n43", "1,000\n2,000\n2,000",
				"800\n1,700\n1,800", "10\n20\n30", "0\n0\n50", "0\n0\n0",
				"810\n1,720\n1,880",
			},
		},
	}
}

func deathFixture() *table.RawTable {
	return &table.RawTable{
		Page: 3,
		Rows: [][]string{
			{"保单年度", "年龄", "c3", "c4", "c5", "c6", "c7", "c8", "c9", "身故赔偿 (F)"},
			{"1", "41", "-", "-", "-", "-", "-", "-", "-", "2,500"},
			{"2", "42", "-", "-", "-", "-", "-", "-", "-", "5,000"},
		},
	}
}

func withdrawalFixture() *table.RawTable {
	return &table.RawTable{
		Page: 4,
		Rows: [][]string{
			{
				"保单年度", "年龄", "基准金额", "每年可提取金额 (2)", "提取年期 (1)",
				"保证现金价值 (A)", "复归红利 (B)", "终期红利 (C)", "特别红利 #",
				"退保总额",
			},
			{"1", "41", "-", "0", "-", "800", "10", "0", "0", "810"},
			{"2", "42", "-", "0", "-", "1,700", "20", "0", "0", "1,720"},
			{"3", "43", "-", "500", "-", "1,500", "20", "30", "0", "1,550"},
		},
	}
}

func runPipeline(t *testing.T, rawTables []*table.RawTable, textSources ...string) (*policy.Illustration, []Warning) {
	t.Helper()
	ctx := &runContext{options: defaultOptions()}
	ctx.textSources = textSources
	classifyTables(ctx, rawTables)
	return extract(ctx), ctx.warnings
}

func TestPipelineFullDocument(t *testing.T) {
	ill, warnings := runPipeline(t,
		[]*table.RawTable{infoFixture(), surrenderFixture(), deathFixture(), withdrawalFixture()},
		"建议书 环宇盈活储蓄保险计划 港元保单",
	)

	pi := ill.PolicyInfo
	if pi.InsuredName != "张三" {
		t.Errorf("InsuredName = %q, want 张三", pi.InsuredName)
	}
	if pi.AgeAtIssue != 40 {
		t.Errorf("AgeAtIssue = %d, want 40", pi.AgeAtIssue)
	}
	if pi.Currency != "HKD" || pi.CurrencySymbol != "HK$" {
		t.Errorf("Currency = %s/%s, want HKD/HK$", pi.Currency, pi.CurrencySymbol)
	}

	// The free-text premium guess (1,200/year for 5 years) is overridden by
	// the values observed in the yearly series.
	if pi.AnnualPremium != 1000 {
		t.Errorf("AnnualPremium = %v, want 1000", pi.AnnualPremium)
	}
	if pi.PaymentYears != 2 {
		t.Errorf("PaymentYears = %d, want 2", pi.PaymentYears)
	}
	if pi.TotalPremium != 2000 {
		t.Errorf("TotalPremium = %v, want 2000", pi.TotalPremium)
	}

	if pi.ProductName != "环宇盈活储蓄保险计划（2年缴费）" {
		t.Errorf("ProductName = %q", pi.ProductName)
	}
	if pi.ProductNameEN != "AIA Vision Life Savings Plan (2-Year Payment)" {
		t.Errorf("ProductNameEN = %q", pi.ProductNameEN)
	}

	if len(ill.YearlyData) != 3 {
		t.Fatalf("YearlyData length = %d, want 3", len(ill.YearlyData))
	}
	want := []policy.YearlyRecord{
		{Year: 1, Age: 41, CumulativePremium: 1000, GuaranteedCashValue: 800,
			ReversionaryBonus: 10, TotalSurrenderValue: 810, TotalDeathBenefit: 2500},
		{Year: 2, Age: 42, CumulativePremium: 2000, GuaranteedCashValue: 1700,
			ReversionaryBonus: 20, TotalSurrenderValue: 1720, TotalDeathBenefit: 5000},
		// Year 3 is missing from the death-benefit series: the benefit falls
		// back to max(total surrender, cumulative premium). The terminal
		// dividend absorbs the special dividend (zero here).
		{Year: 3, Age: 43, CumulativePremium: 2000, GuaranteedCashValue: 1800,
			ReversionaryBonus: 30, TerminalDividend: 50, TotalSurrenderValue: 1880,
			TotalDeathBenefit: 2000},
	}
	for i, rec := range ill.YearlyData {
		if rec != want[i] {
			t.Errorf("YearlyData[%d] = %+v, want %+v", i, rec, want[i])
		}
	}

	if len(ill.WithdrawalData) != 3 {
		t.Fatalf("WithdrawalData length = %d, want 3", len(ill.WithdrawalData))
	}
	wd := ill.WithdrawalData[2]
	if wd.WithdrawalAmount != 500 || wd.RemainingSurrenderGuaranteed != 1500 ||
		wd.RemainingSurrenderBonus != 20 || wd.RemainingSurrenderTerminal != 30 ||
		wd.RemainingSurrenderTotal != 1550 {
		t.Errorf("WithdrawalData[2] = %+v", wd)
	}

	if ill.Brand.LogoText != "AIA" {
		t.Errorf("Brand.LogoText = %q, want AIA", ill.Brand.LogoText)
	}
	if len(ill.Display.HighlightYears) == 0 {
		t.Error("Display.HighlightYears empty, want catalog defaults")
	}

	// The assembled record set is internally consistent.
	if issues := policy.Validate(ill); len(issues) != 0 {
		t.Errorf("Validate() = %v, want none", issues)
	}

	if len(warnings) == 0 {
		t.Error("no warnings raised, want at least the classification summary")
	}
}

func TestPipelineEmptyDocument(t *testing.T) {
	ill, warnings := runPipeline(t, nil)

	if ill == nil {
		t.Fatal("extract() = nil, want an illustration")
	}
	if ill.YearlyData == nil || len(ill.YearlyData) != 0 {
		t.Errorf("YearlyData = %v, want empty non-nil slice", ill.YearlyData)
	}
	if ill.WithdrawalData != nil {
		t.Errorf("WithdrawalData = %v, want nil", ill.WithdrawalData)
	}
	if ill.PolicyInfo.Insurer != "AIA" {
		t.Errorf("Insurer = %q, want catalog default", ill.PolicyInfo.Insurer)
	}

	assertWarningContains(t, warnings, "no yearly data extracted")
}

func TestPipelineHeuristicFallback(t *testing.T) {
	// Junk headers defeat strict classification, so the numeric 8-column
	// table is recovered by the heuristic pass and read with the
	// conventional positional layout.
	tbl := &table.RawTable{
		Page: 2,
		Rows: [][]string{
			{"col0", "col1", "col2", "col3", "col4", "col5", "col6", "col7"},
			{"1", "41", "1,000", "800", "10", "0", "0", "810"},
			{"2", "42", "2,000", "1,700", "20", "0", "0", "1,720"},
			{"3", "43", "2,000", "1,800", "30", "0", "0", "1,830"},
			{"4", "44", "2,000", "1,900", "40", "0", "0", "1,940"},
			{"5", "45", "2,000", "2,000", "50", "0", "0", "2,050"},
		},
	}
	ill, warnings := runPipeline(t, []*table.RawTable{tbl})

	if len(ill.YearlyData) != 5 {
		t.Fatalf("YearlyData length = %d, want 5", len(ill.YearlyData))
	}
	first := ill.YearlyData[0]
	if first.CumulativePremium != 1000 || first.GuaranteedCashValue != 800 ||
		first.TotalSurrenderValue != 810 {
		t.Errorf("YearlyData[0] = %+v", first)
	}
	// No death-benefit table: the benefit defaults to
	// max(total surrender, cumulative premium).
	if first.TotalDeathBenefit != 1000 {
		t.Errorf("TotalDeathBenefit = %v, want 1000", first.TotalDeathBenefit)
	}

	assertWarningContains(t, warnings, "heuristic")
}

func TestPipelineLastResortFallback(t *testing.T) {
	// Nothing classifiable, nothing numeric: the largest retained table is
	// forced into the surrender-value role so extraction still completes,
	// and the run reports why.
	tbl := &table.RawTable{
		Page: 2,
		Rows: [][]string{
			{"alpha", "beta", "gamma", "delta"},
			{"epsilon", "zeta", "eta", "theta"},
			{"iota", "kappa", "lambda", "mu"},
			{"nu", "xi", "omicron", "pi"},
			{"rho", "sigma", "tau", "upsilon"},
		},
	}
	ill, warnings := runPipeline(t, []*table.RawTable{tbl})

	if len(ill.YearlyData) != 0 {
		t.Errorf("YearlyData = %v, want empty", ill.YearlyData)
	}
	assertWarningContains(t, warnings, "last resort")
	assertWarningContains(t, warnings, "no yearly data extracted")
}

func TestClassifyTablesBuckets(t *testing.T) {
	// A large first-page table is series data, not policy info; tables with
	// fewer than two rows are dropped outright.
	bigFirstPage := surrenderFixture()
	bigFirstPage.Page = 1
	bigFirstPage.Rows = append(bigFirstPage.Rows,
		[]string{"4\n5", "44\n45", "2,000\n2,000", "1,900\n2,000", "40\n50", "0\n0", "0\n0", "1,940\n2,050"},
		[]string{"6\n7", "46\n47", "2,000\n2,000", "2,100\n2,200", "60\n70", "0\n0", "0\n0", "2,160\n2,270"},
	)
	oneRow := &table.RawTable{Page: 2, Rows: [][]string{{"orphan", "row"}}}

	ctx := &runContext{options: defaultOptions()}
	classifyTables(ctx, []*table.RawTable{infoFixture(), bigFirstPage, oneRow})

	if len(ctx.info) != 1 {
		t.Errorf("info tables = %d, want 1", len(ctx.info))
	}
	if len(ctx.surrender) != 1 {
		t.Errorf("surrender tables = %d, want 1", len(ctx.surrender))
	}
	if len(ctx.unclassified) != 0 {
		t.Errorf("unclassified tables = %d, want 0", len(ctx.unclassified))
	}
}

func TestInfoRowLimitOption(t *testing.T) {
	// Raising the limit reroutes a taller first-page table into the info
	// bucket.
	tall := &table.RawTable{
		Page: 1,
		Rows: [][]string{
			{"受保人", "张三", ""},
			{"年龄", "40", ""},
			{"性别", "M", ""},
			{"保费", "US$1,200", ""},
			{"货币", "美元", ""},
		},
	}

	ctx := &runContext{options: defaultOptions()}
	classifyTables(ctx, []*table.RawTable{tall})
	if len(ctx.info) != 0 {
		t.Fatalf("info tables = %d, want 0 under default limit", len(ctx.info))
	}

	opts := defaultOptions()
	opts.infoRowLimit = 6
	ctx = &runContext{options: opts}
	classifyTables(ctx, []*table.RawTable{tall})
	if len(ctx.info) != 1 {
		t.Errorf("info tables = %d, want 1 under raised limit", len(ctx.info))
	}
}

func assertWarningContains(t *testing.T, warnings []Warning, substr string) {
	t.Helper()
	for _, w := range warnings {
		if strings.Contains(w.Message, substr) {
			return
		}
	}
	t.Errorf("no warning containing %q in:\n%s", substr, FormatWarnings(warnings))
}
