package jobsps

const (
	listingSelector      = ".list-3--title.list-3--row"
	listingDateSelector  = ".list-3--cell-1.list-3--cell-4.align-right"
	expiredSelector      = ".btn-3.btn-block.view--job-post--apply.expired"
	posterLinkSelector   = ".view--title h2 a"
	descriptionSelector  = ".view--content.readable-content > div:nth-child(2)"
	requirementsSelector = ".view--content.readable-content > div:nth-child(4)"
	instructionsSelector = ".view--content.readable-content > div:nth-child(9)"
	titleSelector        = ".view--detail-custom > div:nth-child(1) > span:nth-child(2)"
	deadlineSelector     = ".view--detail-custom > div:nth-child(2) > span:nth-child(2)"
	vacancySelector      = ".view--detail-custom > div:nth-child(4) > span:nth-child(2)"
	levelSelector        = ".view--detail-custom > div:nth-child(5) > span:nth-child(2)"
	degreeSelector       = ".view--detail-custom > div:nth-child(7) > span:nth-child(2)"
	experienceSelector   = ".view--detail-custom > div:nth-child(8) > span:nth-child(2)"
	locationSelector     = ".view--detail-item.view--detail-item-location > span:nth-child(2)"
	salarySelector       = ".view--detail-item.view--detail-item--salary > span:nth-child(2)"

	companyNameSelector        = ".f-wrapper .view--header h1 > span"
	companyWebsiteSelector     = "#tab-1 > div:nth-child(1) > span.value"
	companyLocationSelector    = "#tab-1 .company-profile--locations > span.value"
	companyEstablishedSelector = "#tab-1 .company-profile--foundation_date > span.value"
)
