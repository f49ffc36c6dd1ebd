package uvc

import "errors"

var (
	ErrNoDevice                 = errors.New("no uvc device found")
	ErrControlInterfaceNotFound = errors.New("control interface not found")
	ErrUnknownControl           = errors.New("unknown control")
)
