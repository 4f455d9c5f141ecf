package services

import (
	"github.com/SundayYogurt/intern_service/internal/dto"
	"github.com/SundayYogurt/intern_service/internal/repository"
)

// กันค่า capacity เพี้ยน ๆ ใน DB ไม่ให้กินแรมเกินเหตุ
const maxSlotsPerDivision = 1000

// slot คือสิทธิ์รับ intern หนึ่งที่นั่งในแผนก ผูกพี่เลี้ยงไว้ล่วงหน้าแบบ round-robin
type slot struct {
	divisionID uint
	mentorID   *uint
}

type slotPool struct {
	order []uint
	slots map[uint][]slot
}

// newSlotPool สร้างคิว slot ต่อแผนกจาก snapshot ของ capacity/occupancy
// ลำดับแผนกคือลำดับที่ repository คืนมา (id ASC) เพื่อให้ผล allocation ทำซ้ำได้
func newSlotPool(divisions []repository.DivisionCapacity) *slotPool {
	pool := &slotPool{
		order: make([]uint, 0, len(divisions)),
		slots: make(map[uint][]slot, len(divisions)),
	}

	for _, dc := range divisions {
		free := dc.Division.Capacity - dc.Occupied
		if free < 0 {
			free = 0
		}
		if free > maxSlotsPerDivision {
			free = maxSlotsPerDivision
		}

		queue := make([]slot, 0, free)
		for i := 0; i < free; i++ {
			s := slot{divisionID: dc.Division.ID}
			if len(dc.Mentors) > 0 {
				mentorID := dc.Mentors[i%len(dc.Mentors)].ID
				s.mentorID = &mentorID
			}
			queue = append(queue, s)
		}

		pool.order = append(pool.order, dc.Division.ID)
		pool.slots[dc.Division.ID] = queue
	}

	return pool
}

func (p *slotPool) totalFree() int {
	n := 0
	for _, q := range p.slots {
		n += len(q)
	}
	return n
}

func (p *slotPool) pop(divisionID uint) (slot, bool) {
	q := p.slots[divisionID]
	if len(q) == 0 {
		return slot{}, false
	}
	s := q[0]
	p.slots[divisionID] = q[1:]
	return s, true
}

// take หยิบ slot ถัดไป: แผนกที่ candidate ขอมาก่อน ถ้าเต็มแล้วไล่ตามลำดับแผนก
func (p *slotPool) take(preferred *uint) (slot, bool) {
	if preferred != nil {
		if s, ok := p.pop(*preferred); ok {
			return s, true
		}
	}
	for _, id := range p.order {
		if s, ok := p.pop(id); ok {
			return s, true
		}
	}
	return slot{}, false
}

type assignment struct {
	candidate  dto.CandidateRecord
	divisionID uint
	mentorID   *uint
}

// allocateSlots เดินตามลำดับ input แล้วจ่าย slot แบบ greedy
// คนที่ไม่มีที่ว่างเหลือจะถูกคืนกลับเป็น noCapacity ไม่ทำให้ batch ล้ม
func allocateSlots(pool *slotPool, candidates []dto.CandidateRecord) ([]assignment, []dto.CandidateRecord) {
	assignments := make([]assignment, 0, len(candidates))
	var noCapacity []dto.CandidateRecord

	for _, c := range candidates {
		s, ok := pool.take(c.DivisionID)
		if !ok {
			noCapacity = append(noCapacity, c)
			continue
		}
		assignments = append(assignments, assignment{
			candidate:  c,
			divisionID: s.divisionID,
			mentorID:   s.mentorID,
		})
	}

	return assignments, noCapacity
}
