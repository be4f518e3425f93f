package service

import "room-booking-api/modules/recommendation/entity"

const testDate = "2024-01-15"

func window(start, end string) entity.TimeWindow {
	return entity.TimeWindow{Date: testDate, Start: tod(start), End: tod(end)}
}

func booking(id, spaceID int64, start, end string) entity.Booking {
	sid := spaceID
	return entity.Booking{
		ID:        id,
		SpaceID:   &sid,
		Date:      testDate,
		StartTime: start,
		EndTime:   end,
		Status:    entity.BookingStatusApproved,
	}
}

func space(id int64, capacity int, building, floor string) entity.Space {
	return entity.Space{
		ID:       id,
		Name:     "Room " + string(rune('A'+id-1)),
		Capacity: capacity,
		Category: "meeting",
		Building: building,
		Floor:    floor,
	}
}
