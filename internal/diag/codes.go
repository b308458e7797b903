package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка, fallback для нераспознанных случаев
	UnknownCode Code = 0

	// Стрипинг разметки
	StripInfo               Code = 1000
	StripUnknownSyntax      Code = 1001
	StripUnterminatedBlock  Code = 1002
	StripUnmappedExtension  Code = 1003
	StripDirectivesResidual Code = 1004

	// Генерация и шаблоны
	GenInfo             Code = 2000
	GenTemplateParse    Code = 2001
	GenTemplateExec     Code = 2002
	GenUnknownGenerator Code = 2003
	GenTargetExists     Code = 2004
	GenEditedFile       Code = 2005
	GenBadName          Code = 2006

	// Манифест проекта
	ProjInfo           Code = 3000
	ProjManifestLost   Code = 3001
	ProjManifestParse  Code = 3002
	ProjManifestField  Code = 3003
	ProjBadSyntaxID    Code = 3004
	ProjBadPackager    Code = 3005

	// Файловые операции
	IOInfo        Code = 4000
	IOReadFailed  Code = 4001
	IOWriteFailed Code = 4002
	IOWalkFailed  Code = 4003
	IOLedger      Code = 4004
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown error",

	StripInfo:               "strip info",
	StripUnknownSyntax:      "unknown comment syntax",
	StripUnterminatedBlock:  "unterminated removal block",
	StripUnmappedExtension:  "no comment syntax for file extension",
	StripDirectivesResidual: "removal markers left in output",

	GenInfo:             "generation info",
	GenTemplateParse:    "template parse failed",
	GenTemplateExec:     "template render failed",
	GenUnknownGenerator: "generator not found",
	GenTargetExists:     "target already exists",
	GenEditedFile:       "regenerating over edited file",
	GenBadName:          "invalid name",

	ProjInfo:          "project info",
	ProjManifestLost:  "project manifest not found",
	ProjManifestParse: "project manifest parse failed",
	ProjManifestField: "invalid manifest field",
	ProjBadSyntaxID:   "manifest maps extension to unknown syntax",
	ProjBadPackager:   "unsupported packager",

	IOInfo:        "io info",
	IOReadFailed:  "read failed",
	IOWriteFailed: "write failed",
	IOWalkFailed:  "walk failed",
	IOLedger:      "ledger unavailable",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("STRIP%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
