package gallery

const (
	LazyClass      = "lazy"
	RealSourceAttr = "data-original"
	LazyLoadScript = "vendor/jquery.lazyload"

	// Placeholder is shown until the real source is loaded.
	Placeholder = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAFAAAAB4AQMAAABfIOe1AAAAA1BMVEXd3d3u346CAAAAFElEQVQ4y2NgGAWjYBSMglGADwAABSgAAXtgpQIAAAAASUVORK5CYII="

	bootstrapScript = `<script type="text/javascript">
jQuery(function($){
    $("img.` + LazyClass + `").lazyload({
        effect : "fadeIn"
    });
});</script>`
)
