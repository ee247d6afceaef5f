package testutil

import "fmt"

// EntryScriptPretty returns an entry script the way the authoring tool
// exports it without compression: a pretty-printed stage block with
// width/height styles and a 4-argument registration call.
func EntryScriptPretty(stageID string) string {
	return fmt.Sprintf(`/**
 * Adobe Edge: demo
 */
(function($,Edge,compId){
var im='images/';
var fonts = {};
var resources = [];
var symbols = {
"stage": {
   version: "0.5.4",
   baseState: "Base State",
   initialState: "Base State",
   content: {
      dom: [
      {
         id:'bg',
         type:'image',
         rect:[0,0,600,280],
         fill:["rgba(0,0,0,0)",im+"bg.png"]
      }]
   },
   states: {
      "Base State": {
         "${_Stage}": [
            ["color", "background-color", 'rgba(255,255,255,1)'],
            ["style", "overflow", 'hidden'],
            ["style", "height", '280px'],
            ["style", "width", '600px']
         ],
         "${_bg}": [
            ["style", "top", '0px'],
            ["style", "left", '0px']
         ]
      }
   }
}
};

Edge.registerCompositionDefn(compId, symbols, fonts, resources);

/**
 * Adobe Edge DOM Ready Event Handler
 */
$(window).ready(function() {
     Edge.launchComposition(compId);
});
})(jQuery, AdobeEdge, "%s");
`, stageID)
}

// EntryScriptMinified returns an entry script the way the authoring
// tool exports it with build-time compression: the stage bound to a
// short variable and dimensions set through a chained P() expression.
func EntryScriptMinified(stageID string) string {
	return fmt.Sprintf(`(function($,Edge,compId){`+
		`var f=false,t=true,h='height',w='width';`+
		`var A1="${_Stage}",A2="${_bg}";`+
		`var sy={},fo={},re=[],opts={};`+
		`e.An(A1,[0,0]).P(h,280).P(w,600,f,f,'p').c();`+
		`Edge.registerCompositionDefn(compId,sy,fo,re,opts);`+
		`$(window).ready(function(){Edge.launchComposition(compId);});`+
		`})($,AdobeEdge,"%s");`, stageID)
}

// PreloaderScript returns a companion preloader script carrying all
// three rewrite anchors: the resource loader call, the launch gate and
// the closing wrapper keyed by the stage identifier.
func PreloaderScript(stageID string) string {
	return fmt.Sprintf(`(function(compId){
var im='images/';
var aLoader = [
    { load: "edge_includes/jquery-1.7.1.min.js"},
    { load: "edge_includes/edge.0.5.4.min.js"},
    { load: "demo_edge.js"}];
var aPreloadDOM = [
    { id:'preload', type:'image', rect:[0,0,600,280], fill:["rgba(0,0,0,0)",im+"bg.png"] }];
var aTransDOM = [
    { id:'trans', type:'image', rect:[0,0,600,280], fill:["rgba(0,0,0,0)",im+"poster.png"] }];

function doDelayLoad() {
    okToLaunchComposition(compId);
}

loadResources(aLoader, doDelayLoad);
})("%s");
`, stageID)
}

// CompanionDocument returns the exported HTML document that references
// the runtime from the shared includes folder.
func CompanionDocument(version string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>demo</title>
    <script type="text/javascript" charset="utf-8" src="edge_includes/edge.%s.min.js"></script>
</head>
<body style="margin:0;padding:0;">
    <div id="Stage" class="EDGE-130892332"></div>
</body>
</html>
`, version)
}
