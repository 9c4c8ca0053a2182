package fgui

// AlignType is horizontal alignment.
type AlignType uint8

const (
	AlignLeft AlignType = iota
	AlignCenter
	AlignRight
)

// VertAlignType is vertical alignment.
type VertAlignType uint8

const (
	VertAlignTop VertAlignType = iota
	VertAlignMiddle
	VertAlignBottom
)

// OverflowType controls how a container treats children outside its bounds.
type OverflowType uint8

const (
	OverflowVisible OverflowType = iota
	OverflowHidden
	OverflowScroll
)

// FillType controls how a loader fits its content.
type FillType uint8

const (
	FillNone FillType = iota
	FillScale
	FillScaleMatchHeight
	FillScaleMatchWidth
	FillScaleFree
	FillScaleNoBorder
)

// AutoSizeType controls how a text field resizes to its content.
type AutoSizeType uint8

const (
	AutoSizeNone AutoSizeType = iota
	AutoSizeBoth
	AutoSizeHeight
	AutoSizeShrink
	AutoSizeEllipsis
)

// ScrollType selects the scrolling axes of a ScrollPane.
type ScrollType uint8

const (
	ScrollHorizontal ScrollType = iota
	ScrollVertical
	ScrollBoth
)

// ScrollBarDisplayType controls scroll bar visibility.
type ScrollBarDisplayType uint8

const (
	ScrollBarDefault ScrollBarDisplayType = iota
	ScrollBarVisible
	ScrollBarAuto
	ScrollBarHidden
)

// ListLayoutType arranges list items.
type ListLayoutType uint8

const (
	ListSingleColumn ListLayoutType = iota
	ListSingleRow
	ListFlowHorizontal
	ListFlowVertical
	ListPagination
)

// ListSelectionMode controls how clicks change list selection.
type ListSelectionMode uint8

const (
	SelectionSingle ListSelectionMode = iota
	SelectionMultiple
	SelectionMultipleSingleClick
	SelectionNone
)

// ProgressTitleType selects the progress bar title format.
type ProgressTitleType uint8

const (
	ProgressTitlePercent ProgressTitleType = iota
	ProgressTitleValueAndMax
	ProgressTitleValue
	ProgressTitleMax
)

// GroupLayoutType arranges the members of a group.
type GroupLayoutType uint8

const (
	GroupLayoutNone GroupLayoutType = iota
	GroupLayoutHorizontal
	GroupLayoutVertical
)

// PopupDirection is the preferred side for a popup relative to its target.
type PopupDirection uint8

const (
	PopupAuto PopupDirection = iota
	PopupUp
	PopupDown
)

// FlipType mirrors an image.
type FlipType uint8

const (
	FlipNone FlipType = iota
	FlipHorizontal
	FlipVertical
	FlipBoth
)

// FillMethod selects a partial-fill mode for images.
type FillMethod uint8

const (
	FillMethodNone FillMethod = iota
	FillMethodHorizontal
	FillMethodVertical
	FillMethodRadial90
	FillMethodRadial180
	FillMethodRadial360
)

// ButtonMode selects button toggle behavior.
type ButtonMode uint8

const (
	ButtonCommon ButtonMode = iota
	ButtonCheck
	ButtonRadio
)

// ScreenMatchMode selects how the content scale factor is derived from the
// screen size and the design resolution.
type ScreenMatchMode uint8

const (
	MatchWidthOrHeight ScreenMatchMode = iota
	MatchWidth
	MatchHeight
)
