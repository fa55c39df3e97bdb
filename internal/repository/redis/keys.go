package redis

import "fmt"

const ns = "ticketblock:v1"

func KeyEventSummary(eventID uint64) string {
	return fmt.Sprintf("%s:event:%d:summary", ns, eventID)
}

func KeyEventAvailability(eventID uint64) string {
	return fmt.Sprintf("%s:event:%d:availability", ns, eventID)
}

func KeyEventSeatMap(eventID uint64) string {
	return fmt.Sprintf("%s:event:%d:seatmap", ns, eventID)
}

func KeyDisplayRate(currency string) string {
	return fmt.Sprintf("%s:rates:%s", ns, currency)
}

func KeyIdemPurchase(eventID, ticketID uint64, idemKey string) string {
	return fmt.Sprintf("%s:idem:purchase:%d:%d:%s", ns, eventID, ticketID, idemKey)
}

func ChannelTicketsChanged() string {
	return ns + ":tickets:changed"
}
