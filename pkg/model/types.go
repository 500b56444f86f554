package model

import internalmodel "github.com/goliatone/go-regform/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeText   = internalmodel.FieldTypeText
	FieldTypeEmail  = internalmodel.FieldTypeEmail
	FieldTypeTel    = internalmodel.FieldTypeTel
	FieldTypeDate   = internalmodel.FieldTypeDate
	FieldTypeNumber = internalmodel.FieldTypeNumber
	FieldTypeSelect = internalmodel.FieldTypeSelect
	FieldTypeRadio  = internalmodel.FieldTypeRadio
)

// InputKind re-exports the internal InputKind enumeration.
type InputKind = internalmodel.InputKind

const (
	InputKindFree     = internalmodel.InputKindFree
	InputKindName     = internalmodel.InputKindName
	InputKindMobile   = internalmodel.InputKindMobile
	InputKindLandline = internalmodel.InputKindLandline
	InputKindZipCode  = internalmodel.InputKindZipCode
	InputKindYear     = internalmodel.InputKindYear
	InputKindGrade    = internalmodel.InputKindGrade
	InputKindChoice   = internalmodel.InputKindChoice
)

// SectionID re-exports the internal SectionID enumeration.
type SectionID = internalmodel.SectionID

const (
	SectionPersonal   = internalmodel.SectionPersonal
	SectionContact    = internalmodel.SectionContact
	SectionAcademic   = internalmodel.SectionAcademic
	SectionEnrollment = internalmodel.SectionEnrollment
)

type Option = internalmodel.Option
type Field = internalmodel.Field
type Section = internalmodel.Section
type FormModel = internalmodel.FormModel
