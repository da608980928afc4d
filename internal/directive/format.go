package directive

import (
	"fmt"
	"strconv"

	"github.com/cx-tal-miterani/ticket-admission/shared/models"
)

// LineEnding terminates every output line.
const LineEnding = "\r\n"

// errorLine is the only thing a failed directive ever prints.
const errorLine = "error"

func formatAddSeats(res *models.AddSeatsResult) []string {
	return []string{fmt.Sprintf("addseats %s %d %d %d",
		res.Flight, res.Seats.Business, res.Seats.Economy, res.Seats.Standard)}
}

func formatEnqueue(res *models.EnqueueResult) []string {
	return []string{fmt.Sprintf("queue %s %s %s %d", res.Flight, res.Passenger, res.Class, res.InClass)}
}

func formatSell(res *models.SellResult) []string {
	return []string{fmt.Sprintf("sold %s %d %d %d",
		res.Flight, res.Sold.Business, res.Sold.Economy, res.Sold.Standard)}
}

func formatClose(res *models.CloseResult) []string {
	lines := make([]string, 0, len(res.Stranded)+1)
	lines = append(lines, fmt.Sprintf("closed %s %d %d", res.Flight, res.Sold, res.Waiting))
	for _, name := range res.Stranded {
		lines = append(lines, "waiting "+name)
	}
	return lines
}

func formatReport(res *models.Report) []string {
	lines := []string{"report " + res.Flight}
	for _, cr := range res.Classes {
		lines = append(lines, cr.Class.String()+" "+strconv.Itoa(len(cr.Passengers)))
		lines = append(lines, cr.Passengers...)
	}
	return append(lines, "end of report "+res.Flight)
}

func formatInfo(res *models.PassengerInfo) []string {
	return []string{fmt.Sprintf("info %s %s %s %s", res.Name, res.Flight, res.Requested, res.Purchased)}
}
