package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"galon/config"
	"galon/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ReportHandler 月度报表处理器
type ReportHandler struct {
	ledger *service.Ledger
	now    func() time.Time
}

// NewReportHandler 创建月度报表处理器
func NewReportHandler(admitter *service.Admitter) *ReportHandler {
	return &ReportHandler{ledger: admitter.Ledger(), now: admitter.Now}
}

// MonthlyReport 月度报表
type MonthlyReport struct {
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	TotalEmployees int             `json:"total_employees"`
	TotalGalons    int             `json:"total_galons"`
	Exhausted      int             `json:"exhausted"`
	Rows           []EmployeeQuota `json:"rows"`
}

// period 解析 month/year 查询参数，缺省为当月
func (h *ReportHandler) period(c *gin.Context) (service.Period, bool) {
	p := service.PeriodOf(h.now())
	if m := c.Query("month"); m != "" {
		v, err := strconv.Atoi(m)
		if err != nil {
			return p, false
		}
		p.Month = v
	}
	if y := c.Query("year"); y != "" {
		v, err := strconv.Atoi(y)
		if err != nil {
			return p, false
		}
		p.Year = v
	}
	return p, p.Valid()
}

func (h *ReportHandler) build(c *gin.Context) (*MonthlyReport, bool) {
	p, ok := h.period(c)
	if !ok {
		BadRequest(c, "Invalid month or year")
		return nil, false
	}

	usage, err := h.ledger.MonthlyReport(c.Request.Context(), p)
	if err != nil {
		config.LogError("api", "ReportHandler.build", "monthly usage", p, err)
		InternalError(c, SafeErrorMessage(err, "Failed to build report"))
		return nil, false
	}

	report := &MonthlyReport{
		Month:          p.Month,
		Year:           p.Year,
		TotalEmployees: len(usage),
		Rows:           make([]EmployeeQuota, 0, len(usage)),
	}
	for _, u := range usage {
		report.TotalGalons += u.CurrentUsage
		if u.RemainingQuota == 0 {
			report.Exhausted++
		}
		report.Rows = append(report.Rows, newEmployeeQuota(u.Employee, u.QuotaSummary))
	}
	return report, true
}

// Monthly 月度领取报表
// @Summary 月度领取报表
// @Description 所有员工在指定月份的领取量与剩余额度，month/year 缺省为当月
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Param month query int false "月份 1-12"
// @Param year query int false "年份"
// @Success 200 {object} Response{data=MonthlyReport} "获取成功"
// @Failure 400 {object} Response "月份或年份不合法"
// @Router /admin/reports/monthly [get]
func (h *ReportHandler) Monthly(c *gin.Context) {
	report, ok := h.build(c)
	if !ok {
		return
	}
	Success(c, report)
}

// MonthlyExcel 导出月度报表为 Excel
// @Summary 导出月度报表
// @Tags 报表
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param month query int false "月份 1-12"
// @Param year query int false "年份"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} Response "月份或年份不合法"
// @Router /admin/reports/monthly/excel [get]
func (h *ReportHandler) MonthlyExcel(c *gin.Context) {
	report, ok := h.build(c)
	if !ok {
		return
	}

	buf, err := renderMonthlyExcel(report)
	if err != nil {
		config.LogError("api", "ReportHandler.MonthlyExcel", "render xlsx", report.Month, err)
		InternalError(c, SafeErrorMessage(err, "Failed to generate Excel file"))
		return
	}

	filename := fmt.Sprintf("galon_report_%04d_%02d.xlsx", report.Year, report.Month)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

var borderAll = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
}

func renderMonthlyExcel(report *MonthlyReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("%04d-%02d", report.Year, report.Month)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    borderAll,
	})
	if err != nil {
		return nil, err
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    borderAll,
	})
	if err != nil {
		return nil, err
	}
	summaryStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Border: borderAll,
	})
	if err != nil {
		return nil, err
	}

	widths := map[string]float64{"A": 15, "B": 30, "C": 20, "D": 14, "E": 14, "F": 14}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}

	headers := []string{"Employee ID", "Full Name", "Department", "Used", "Remaining", "Quota"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	f.SetCellStyle(sheet, "A1", "F1", headerStyle)

	for i, r := range report.Rows {
		row := i + 2
		values := []interface{}{r.EmployeeID, r.FullName, r.Department, r.CurrentUsage, r.RemainingQuota, r.MonthlyQuota}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), dataStyle)
	}

	// 合计行
	sumRow := len(report.Rows) + 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", sumRow), "Total")
	f.MergeCell(sheet, fmt.Sprintf("A%d", sumRow), fmt.Sprintf("C%d", sumRow))
	f.SetCellValue(sheet, fmt.Sprintf("D%d", sumRow), report.TotalGalons)
	f.SetCellValue(sheet, fmt.Sprintf("E%d", sumRow), fmt.Sprintf("%d exhausted", report.Exhausted))
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", sumRow), fmt.Sprintf("F%d", sumRow), summaryStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf, nil
}
