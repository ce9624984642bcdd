package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"invoicer/pkg/models"
)

func TestCSV_HeaderOnly(t *testing.T) {
	assert.Equal(t, "number,date,client,email,amount,applyVAT,vatAmount,total,status,description\n", CSV(nil))
}

func TestCSV(t *testing.T) {
	invoices := []models.Invoice{
		{Number: 1002, Date: "02/03/2024", Client: "Smith, Jones & Co", Email: "a@b.co", Amount: 100, ApplyVAT: true, VATAmount: 20, Total: 120, Status: models.StatusOverdue, Description: `Said "hi", left`},
		{Number: 1001, Date: "01/03/2024", Client: "Acme", Email: "x@y.co", Amount: 5.5, Status: models.StatusPaid, Description: "Line one\r\nLine two\nthree"},
		{Number: 1000, Date: "01/01/2024", Client: `Quote"d`, Email: "q@y.co", Amount: 1, Total: 1, Status: models.StatusUnpaid, Description: "plain"},
	}

	want := "number,date,client,email,amount,applyVAT,vatAmount,total,status,description\n" +
		`1002,02/03/2024,"Smith, Jones & Co",a@b.co,100.00,true,20.00,120.00,Overdue,"Said ""hi"", left"` + "\n" +
		"1001,01/03/2024,Acme,x@y.co,5.50,false,0.00,5.50,Paid,Line one Line two three\n" +
		`1000,01/01/2024,Quote"d,q@y.co,1.00,false,0.00,1.00,Unpaid,plain` + "\n"

	assert.Equal(t, want, CSV(invoices))
}

func TestFileName(t *testing.T) {
	ts := time.Date(2024, 3, 8, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "invoices_2024-03-08.csv", FileName(ts))
}

func TestCSV_LineBreaksOnlyFlattenedInDescription(t *testing.T) {
	invoices := []models.Invoice{
		{Number: 7, Date: "01/03/2024", Client: "Acme\nTrading", Email: "x@y.co", Amount: 1, Total: 1, Status: models.StatusUnpaid, Description: "a\nb"},
	}
	rows := strings.SplitN(CSV(invoices), "\n", 2)
	assert.Equal(t, "7,01/03/2024,Acme\nTrading,x@y.co,1.00,false,0.00,1.00,Unpaid,a b\n", rows[1])
}
