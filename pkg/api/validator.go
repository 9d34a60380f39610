package api

import (
	"errors"
	"math"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p InputPayload) Validate() error {
	if math.IsNaN(p.Dx) || math.IsNaN(p.Dy) || math.IsInf(p.Dx, 0) || math.IsInf(p.Dy, 0) {
		return errors.New("movement vector must be finite")
	}
	// Клиент шлет нормированный вектор; небольшой запас на погрешность.
	if p.Dx*p.Dx+p.Dy*p.Dy > 1.01 {
		return errors.New("movement vector too large")
	}
	return nil
}

func (p ActionPayload) Validate() error {
	if p.Action == "" {
		return errors.New("action is required")
	}
	return nil
}

func (p TargetPayload) Validate() error {
	if p.TargetID == "" {
		return errors.New("targetId is required")
	}
	return nil
}

func (p PointPayload) Validate() error {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
		return errors.New("point must be finite")
	}
	return nil
}
