package service

import (
	"bytes"
	"fmt"

	"github.com/Ravshan88/online-lesson/internal/model"
	"github.com/Ravshan88/online-lesson/internal/util"

	"github.com/jung-kurt/gofpdf"
)

// CertificateService renders the completion certificate for a passed
// exam session. The layout is fixed; given the same session and holder
// name the output is identical, because the document's creation date is
// pinned to the session timestamp.
type CertificateService struct {
	PassThreshold int
}

func NewCertificateService(passThreshold int) *CertificateService {
	return &CertificateService{PassThreshold: passThreshold}
}

// Render produces the A4 certificate PDF. The caller is responsible for
// the eligibility gate; Render re-checks it so the service is safe on its
// own as well.
func (s *CertificateService) Render(session *model.ExamSession, holderName string) ([]byte, error) {
	if !session.Passed {
		return nil, util.ErrNotEligibleForCertificate
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(session.CreatedAt)
	pdf.SetTitle("Sertifikat", true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	const pageWidth = 210.0

	// Outer gold border with a thin institutional-blue inner border.
	pdf.SetDrawColor(0xfa, 0xad, 0x14)
	pdf.SetLineWidth(1.2)
	pdf.Rect(10, 10, pageWidth-20, 277, "D")
	pdf.SetDrawColor(0x01, 0x2c, 0x6e)
	pdf.SetLineWidth(0.3)
	pdf.Rect(14, 14, pageWidth-28, 269, "D")

	// Institution mark.
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(0xfa, 0xad, 0x14)
	pdf.SetXY(0, 24)
	pdf.CellFormat(pageWidth, 10, "OXU", "", 1, "C", false, 0, "")

	// Title and subtitle.
	pdf.SetFont("Helvetica", "B", 36)
	pdf.SetTextColor(0x01, 0x2c, 0x6e)
	pdf.SetXY(0, 38)
	pdf.CellFormat(pageWidth, 14, "SERTIFIKAT", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 16)
	pdf.SetTextColor(0x66, 0x66, 0x66)
	pdf.SetXY(0, 52)
	pdf.CellFormat(pageWidth, 8, tr("Yakuniy Test Natijalari"), "", 1, "C", false, 0, "")

	pdf.SetDrawColor(0xfa, 0xad, 0x14)
	pdf.SetLineWidth(0.8)
	pdf.Line(35, 64, pageWidth-35, 64)

	// Holder.
	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(0, 78)
	pdf.CellFormat(pageWidth, 8, tr("Ushbu sertifikat quyidagi shaxsga beriladi:"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(0x01, 0x2c, 0x6e)
	pdf.SetXY(0, 92)
	pdf.CellFormat(pageWidth, 12, tr(holderName), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(0, 110)
	pdf.CellFormat(pageWidth, 8, tr("Yakuniy testni muvaffaqiyatli yakunladi"), "", 1, "C", false, 0, "")

	// Results panel.
	pdf.SetFillColor(0xf0, 0xf0, 0xf0)
	pdf.Rect(53, 124, pageWidth-106, 44, "F")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0x01, 0x2c, 0x6e)
	pdf.SetXY(0, 128)
	pdf.CellFormat(pageWidth, 8, "Natijalar:", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(0, 138)
	pdf.CellFormat(pageWidth, 8,
		tr(fmt.Sprintf("To'g'ri javoblar: %d / %d", session.CorrectAnswers, session.TotalQuestions)),
		"", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 16)
	r, g, b := scoreColor(session.ScorePercentage)
	pdf.SetTextColor(r, g, b)
	pdf.SetXY(0, 148)
	pdf.CellFormat(pageWidth, 8, fmt.Sprintf("Natija: %d%%", session.ScorePercentage), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0x66, 0x66, 0x66)
	pdf.SetXY(0, 158)
	pdf.CellFormat(pageWidth, 6, tr(fmt.Sprintf("O'tish bali: %d%%", s.PassThreshold)), "", 1, "C", false, 0, "")

	// Issue date comes from the graded session, not from render time.
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(0, 178)
	pdf.CellFormat(pageWidth, 8, "Sana: "+session.CreatedAt.Format("02.01.2006"), "", 1, "C", false, 0, "")

	// Footer.
	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetTextColor(0x66, 0x66, 0x66)
	pdf.SetXY(0, 262)
	pdf.CellFormat(pageWidth, 6, tr("Online Ta'lim Platformasi"), "", 1, "C", false, 0, "")
	pdf.SetXY(0, 269)
	pdf.CellFormat(pageWidth, 6, "www.online-lesson.uz", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func scoreColor(score int) (int, int, int) {
	switch {
	case score >= 70:
		return 0x52, 0xc4, 0x1a
	case score >= 50:
		return 0xfa, 0xad, 0x14
	default:
		return 0xff, 0x4d, 0x4f
	}
}
